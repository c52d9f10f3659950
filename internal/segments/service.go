package segments

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/pkg/cache"
	"pulse/pkg/logger"

	"github.com/google/uuid"
)

// Service defines the segmentation service interface
type Service interface {
	// GetSegment serves the cached segment, computing on a miss.
	GetSegment(ctx context.Context, userID uuid.UUID) (*SegmentResult, error)

	// ComputeSegment always recomputes from current event state and
	// refreshes the cache. Used by the scheduled recompute pass.
	ComputeSegment(ctx context.Context, userID uuid.UUID) (*SegmentResult, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
}

// NewService creates a new segmentation service instance
func NewService(store eventstore.Store, cacheService cache.Service) Service {
	return &service{store: store, cacheService: cacheService}
}

func (s *service) GetSegment(ctx context.Context, userID uuid.UUID) (*SegmentResult, error) {
	cacheKey := constants.BuildSegmentKey(userID.String())

	var result SegmentResult
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_SEGMENT, func() (interface{}, error) {
		return s.compute(ctx, userID)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ComputeSegment(ctx context.Context, userID uuid.UUID) (*SegmentResult, error) {
	result, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := constants.BuildSegmentKey(userID.String())
	if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_SEGMENT); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to cache segment", "user_id", userID.String(), "error", err.Error())
	}
	return result, nil
}

func (s *service) compute(ctx context.Context, userID uuid.UUID) (*SegmentResult, error) {
	profile, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	distinct, err := s.store.DistinctFeatureCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct features: %w", err)
	}

	now := time.Now().UTC()
	days := DaysSince(profile.LastActivityAt, now)

	return &SegmentResult{
		UserID:            userID,
		Segment:           Classify(distinct, days),
		DistinctFeatures:  distinct,
		DaysSinceActivity: days,
		WindowDays:        constants.SEGMENT_ACTIVITY_WINDOW_DAYS,
		ComputedAt:        now,
	}, nil
}
