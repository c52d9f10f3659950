package cohorts

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
)

// Service defines the cohort retention service interface
type Service interface {
	// GetCohorts returns the trailing `weeks` signup cohorts, oldest first.
	GetCohorts(ctx context.Context, weeks int) ([]Cohort, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
}

// NewService creates a new cohort retention service instance
func NewService(store eventstore.Store, cacheService cache.Service) Service {
	return &service{store: store, cacheService: cacheService}
}

func (s *service) GetCohorts(ctx context.Context, weeks int) ([]Cohort, error) {
	if weeks <= 0 {
		return nil, errs.ErrInvalidWindow
	}

	cacheKey := constants.BuildCohortsKey(weeks)

	var cohorts []Cohort
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_COHORTS, func() (interface{}, error) {
		return s.build(ctx, weeks)
	}, &cohorts)
	if err != nil {
		return nil, err
	}
	return cohorts, nil
}

func (s *service) build(ctx context.Context, weeks int) ([]Cohort, error) {
	currentWeek := WeekStartOf(time.Now().UTC())

	cohorts := make([]Cohort, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		weekStart := currentWeek.AddDate(0, 0, -7*i)
		weekEnd := weekStart.AddDate(0, 0, 7)

		profiles, err := s.store.GetSignups(ctx, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load signups for week %s: %w", weekStart.Format("2006-01-02"), err)
		}

		members := make([]SignupActivity, 0, len(profiles))
		for _, profile := range profiles {
			member, err := s.loadMember(ctx, profile)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}

		cohorts = append(cohorts, BuildCohort(weekStart, members))
	}
	return cohorts, nil
}

func (s *service) loadMember(ctx context.Context, profile eventstore.UserProfile) (SignupActivity, error) {
	// Retention samples whole UTC calendar days, so the load window must run
	// through the end of day 30, not 30*24h past the signup's clock time.
	windowEnd := dateOf(profile.CreatedAt).AddDate(0, 0, constants.COHORT_OBSERVATION_DAYS+1)

	events, err := s.store.GetActivityEvents(ctx, &profile.ID, profile.CreatedAt, windowEnd)
	if err != nil {
		return SignupActivity{}, fmt.Errorf("failed to load activity for user %s: %w", profile.ID, err)
	}

	activity := make([]time.Time, 0, len(events))
	for _, event := range events {
		activity = append(activity, event.OccurredAt)
	}

	return SignupActivity{
		SignedUpAt:  profile.CreatedAt,
		ActivityAt:  activity,
		ConvertedAt: profile.ConvertedAt,
	}, nil
}
