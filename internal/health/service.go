package health

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/segments"
	"pulse/internal/shared/constants"
	"pulse/pkg/cache"
	"pulse/pkg/logger"

	"github.com/google/uuid"
)

// Service defines the health scoring service interface
type Service interface {
	// GetHealthScore serves the cached score, computing on a miss.
	GetHealthScore(ctx context.Context, userID uuid.UUID) (*HealthScore, error)

	// ComputeHealthScore always recomputes from current event state and
	// refreshes the cache. Used by the scheduled recompute pass.
	ComputeHealthScore(ctx context.Context, userID uuid.UUID) (*HealthScore, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
	logger       *logger.Logger
}

// NewService creates a new health scoring service instance
func NewService(store eventstore.Store, cacheService cache.Service, log *logger.Logger) Service {
	return &service{store: store, cacheService: cacheService, logger: log}
}

func (s *service) GetHealthScore(ctx context.Context, userID uuid.UUID) (*HealthScore, error) {
	cacheKey := constants.BuildHealthScoreKey(userID.String())

	var score HealthScore
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_HEALTH_SCORE, func() (interface{}, error) {
		return s.compute(ctx, userID)
	}, &score)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *service) ComputeHealthScore(ctx context.Context, userID uuid.UUID) (*HealthScore, error) {
	score, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := constants.BuildHealthScoreKey(userID.String())
	if err := s.cacheService.Set(ctx, cacheKey, score, constants.TTL_HEALTH_SCORE); err != nil {
		s.logger.WarnContext(ctx, "failed to cache health score", "user_id", userID.String(), "error", err.Error())
	}
	return score, nil
}

func (s *service) compute(ctx context.Context, userID uuid.UUID) (*HealthScore, error) {
	profile, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	distinct, err := s.store.DistinctFeatureCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct features: %w", err)
	}

	now := time.Now().UTC()
	inputs := ScoreInputs{
		DistinctFeatures:  distinct,
		AnalysesCount:     profile.AnalysesCount,
		JournalEntries:    profile.JournalEntries,
		DaysSinceActivity: segments.DaysSince(profile.LastActivityAt, now),
		StreakDays:        profile.CurrentStreakDays,
		TeamMemberships:   profile.TeamMemberships,
		MessagesSent:      profile.MessagesSent,
	}

	breadth, depth, recency, streak, social, composite, bucket := ComputeScore(inputs)

	score := &HealthScore{
		UserID:     userID,
		Composite:  composite,
		Breadth:    breadth,
		Depth:      depth,
		Recency:    recency,
		Streak:     streak,
		Social:     social,
		RiskBucket: bucket,
		ComputedAt: now,
	}

	s.logger.LogScoreComputed(ctx, userID.String(), composite, string(bucket))
	return score, nil
}
