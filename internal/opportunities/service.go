package opportunities

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/pkg/cache"
)

// Service defines the conversion-opportunity service interface
type Service interface {
	// FindOpportunities ranks free-tier users by upgrade likelihood, high
	// priority first, heaviest usage first within a priority.
	FindOpportunities(ctx context.Context) ([]ConversionOpportunity, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
}

// NewService creates a new conversion-opportunity service instance
func NewService(store eventstore.Store, cacheService cache.Service) Service {
	return &service{store: store, cacheService: cacheService}
}

func (s *service) FindOpportunities(ctx context.Context) ([]ConversionOpportunity, error) {
	var opportunities []ConversionOpportunity
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_OPPORTUNITIES, constants.TTL_OPPORTUNITIES, func() (interface{}, error) {
		return s.find(ctx)
	}, &opportunities)
	if err != nil {
		return nil, err
	}
	return opportunities, nil
}

func (s *service) find(ctx context.Context) ([]ConversionOpportunity, error) {
	profiles, err := s.store.GetProfilesByTier(ctx, eventstore.TierFree)
	if err != nil {
		return nil, fmt.Errorf("failed to load free-tier profiles: %w", err)
	}

	now := time.Now().UTC()
	opportunities := make([]ConversionOpportunity, 0)
	for _, profile := range profiles {
		features, err := s.store.DistinctFeatureCount(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count features for user %s: %w", profile.ID, err)
		}
		opens, err := s.store.TotalFeatureOpens(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count opens for user %s: %w", profile.ID, err)
		}

		priority, reason, qualifies := Grade(features, opens)
		if !qualifies {
			continue
		}

		opportunities = append(opportunities, ConversionOpportunity{
			UserID:       profile.ID,
			Email:        profile.Email,
			FeaturesUsed: features,
			TotalOpens:   opens,
			Priority:     priority,
			Reason:       reason,
			ComputedAt:   now,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		if opportunities[i].Priority != opportunities[j].Priority {
			return opportunities[i].Priority == PriorityHigh
		}
		return opportunities[i].TotalOpens > opportunities[j].TotalOpens
	})
	return opportunities, nil
}
