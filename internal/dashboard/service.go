package dashboard

import (
	"context"
	"fmt"
	"time"

	"pulse/internal/churn"
	"pulse/internal/cohorts"
	"pulse/internal/eventstore"
	"pulse/internal/funnel"
	"pulse/internal/opportunities"
	"pulse/internal/segments"
	"pulse/internal/shared/constants"
	"pulse/pkg/cache"
	"pulse/pkg/logger"
)

// topListLimit caps the flag and opportunity lists embedded in the
// dashboard; the dedicated endpoints serve the full sets.
const topListLimit = 10

// Service defines the dashboard service interface
type Service interface {
	GetDashboard(ctx context.Context) (*DashboardAnalytics, error)
}

// service implements the Service interface
type service struct {
	store              eventstore.Store
	cacheService       cache.Service
	segmentService     segments.Service
	cohortService      cohorts.Service
	funnelService      funnel.Service
	churnService       churn.Service
	opportunityService opportunities.Service
	logger             *logger.Logger
}

// NewService creates a new dashboard service instance
func NewService(
	store eventstore.Store,
	cacheService cache.Service,
	segmentService segments.Service,
	cohortService cohorts.Service,
	funnelService funnel.Service,
	churnService churn.Service,
	opportunityService opportunities.Service,
	log *logger.Logger,
) Service {
	return &service{
		store:              store,
		cacheService:       cacheService,
		segmentService:     segmentService,
		cohortService:      cohortService,
		funnelService:      funnelService,
		churnService:       churnService,
		opportunityService: opportunityService,
		logger:             log,
	}
}

func (s *service) GetDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	var dashboard DashboardAnalytics
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_DASHBOARD, constants.TTL_DASHBOARD, func() (interface{}, error) {
		return s.build(ctx)
	}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *service) build(ctx context.Context) (*DashboardAnalytics, error) {
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	profiles, err := s.store.GetProfilesByTier(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	usersByTier := make(map[eventstore.Tier]int)
	for _, profile := range profiles {
		usersByTier[profile.Tier]++
	}

	distribution, err := s.segmentDistribution(ctx, profiles)
	if err != nil {
		return nil, err
	}

	funnelSnapshot, err := s.funnelService.AnalyzeFunnel(ctx, constants.FUNNEL_DEFAULT_WINDOW_DAYS)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze funnel: %w", err)
	}

	cohortList, err := s.cohortService.GetCohorts(ctx, constants.COHORT_DEFAULT_WEEKS)
	if err != nil {
		return nil, fmt.Errorf("failed to build cohorts: %w", err)
	}

	flags, err := s.churnService.DetectChurnRisks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to detect churn risks: %w", err)
	}
	critical := 0
	for _, flag := range flags {
		if flag.Level == churn.LevelCritical {
			critical++
		}
	}

	opps, err := s.opportunityService.FindOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find opportunities: %w", err)
	}

	return &DashboardAnalytics{
		Overview: Overview{
			TotalUsers:        totalUsers,
			UsersByTier:       usersByTier,
			ChurnRisksFlagged: len(flags),
			CriticalRisks:     critical,
			Opportunities:     len(opps),
		},
		SegmentDistribution: distribution,
		Funnel:              *funnelSnapshot,
		Cohorts:             cohortList,
		TopChurnRisks:       truncateFlags(flags),
		TopOpportunities:    truncateOpportunities(opps),
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

func (s *service) segmentDistribution(ctx context.Context, profiles []eventstore.UserProfile) (map[segments.Segment]int, error) {
	distribution := map[segments.Segment]int{
		segments.SegmentPowerUser: 0,
		segments.SegmentGrowing:   0,
		segments.SegmentAtRisk:    0,
		segments.SegmentDormant:   0,
	}
	for _, profile := range profiles {
		result, err := s.segmentService.GetSegment(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to segment user %s: %w", profile.ID, err)
		}
		distribution[result.Segment]++
	}
	return distribution, nil
}

func truncateFlags(flags []churn.ChurnRiskFlag) []churn.ChurnRiskFlag {
	if len(flags) > topListLimit {
		return flags[:topListLimit]
	}
	return flags
}

func truncateOpportunities(opps []opportunities.ConversionOpportunity) []opportunities.ConversionOpportunity {
	if len(opps) > topListLimit {
		return opps[:topListLimit]
	}
	return opps
}
