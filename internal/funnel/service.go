package funnel

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
)

// Service defines the funnel analysis service interface
type Service interface {
	// AnalyzeFunnel builds the milestone funnel for signups inside the
	// trailing windowDays window.
	AnalyzeFunnel(ctx context.Context, windowDays int) (*FunnelSnapshot, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
}

// NewService creates a new funnel analysis service instance
func NewService(store eventstore.Store, cacheService cache.Service) Service {
	return &service{store: store, cacheService: cacheService}
}

func (s *service) AnalyzeFunnel(ctx context.Context, windowDays int) (*FunnelSnapshot, error) {
	if windowDays <= 0 {
		return nil, errs.ErrInvalidWindow
	}

	cacheKey := constants.BuildFunnelKey(windowDays)

	var snapshot FunnelSnapshot
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_FUNNEL, func() (interface{}, error) {
		return s.analyze(ctx, windowDays)
	}, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *service) analyze(ctx context.Context, windowDays int) (*FunnelSnapshot, error) {
	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -windowDays)

	profiles, err := s.store.GetSignups(ctx, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load signups: %w", err)
	}

	journeys := make([]SignupJourney, 0, len(profiles))
	for _, profile := range profiles {
		journey, err := s.loadJourney(ctx, profile)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, journey)
	}

	snapshot := Analyze(windowDays, journeys, now)
	return &snapshot, nil
}

func (s *service) loadJourney(ctx context.Context, profile eventstore.UserProfile) (SignupJourney, error) {
	// Only the first day matters for the onboarding milestone.
	onboardingEnd := profile.CreatedAt.Add(constants.FUNNEL_ONBOARDING_WINDOW)
	events, err := s.store.GetFeatureEvents(ctx, &profile.ID, profile.CreatedAt, onboardingEnd)
	if err != nil {
		return SignupJourney{}, fmt.Errorf("failed to load onboarding events for user %s: %w", profile.ID, err)
	}

	var firstFeatureAt *time.Time
	if len(events) > 0 {
		firstFeatureAt = &events[0].OccurredAt
	}

	distinct, err := s.store.DistinctFeatureCount(ctx, profile.ID)
	if err != nil {
		return SignupJourney{}, fmt.Errorf("failed to count distinct features for user %s: %w", profile.ID, err)
	}

	return SignupJourney{
		SignedUpAt:       profile.CreatedAt,
		FirstFeatureAt:   firstFeatureAt,
		TrialStartedAt:   profile.TrialStartedAt,
		DistinctFeatures: distinct,
		ConvertedAt:      profile.ConvertedAt,
	}, nil
}
