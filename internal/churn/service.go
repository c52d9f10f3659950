package churn

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pulse/internal/alerts"
	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
	"pulse/pkg/logger"
)

// Service defines the churn-risk detection service interface
type Service interface {
	// DetectChurnRisks evaluates trial/pro/promo users and returns the
	// flagged ones, most severe first. tierFilter narrows the population to
	// one paid tier; empty means all of them.
	DetectChurnRisks(ctx context.Context, tierFilter string) ([]ChurnRiskFlag, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
	producer     alerts.Producer
	logger       *logger.Logger
}

// NewService creates a new churn-risk detection service instance
func NewService(store eventstore.Store, cacheService cache.Service, producer alerts.Producer, log *logger.Logger) Service {
	return &service{store: store, cacheService: cacheService, producer: producer, logger: log}
}

var severityRank = map[RiskLevel]int{
	LevelCritical: 0,
	LevelHigh:     1,
	LevelMedium:   2,
}

func (s *service) DetectChurnRisks(ctx context.Context, tierFilter string) ([]ChurnRiskFlag, error) {
	tiers, err := resolveTiers(tierFilter)
	if err != nil {
		return nil, err
	}

	cacheKey := constants.BuildChurnRisksKey(tierFilter)

	var flags []ChurnRiskFlag
	err = s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_CHURN_RISKS, func() (interface{}, error) {
		return s.detect(ctx, tiers)
	}, &flags)
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// resolveTiers maps the filter onto the paid tiers the detector watches.
// Free users cannot churn out of a subscription and are never evaluated.
func resolveTiers(tierFilter string) ([]eventstore.Tier, error) {
	if tierFilter == "" {
		return []eventstore.Tier{eventstore.TierTrial, eventstore.TierPro, eventstore.TierPromo}, nil
	}
	tier := eventstore.Tier(tierFilter)
	switch tier {
	case eventstore.TierTrial, eventstore.TierPro, eventstore.TierPromo:
		return []eventstore.Tier{tier}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidTier, tierFilter)
	}
}

func (s *service) detect(ctx context.Context, tiers []eventstore.Tier) ([]ChurnRiskFlag, error) {
	catalogSize, err := s.store.ProFeatureCatalogSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to size pro feature catalog: %w", err)
	}

	profiles, err := s.store.GetProfilesByTier(ctx, tiers...)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	now := time.Now().UTC()
	flags := make([]ChurnRiskFlag, 0)
	critical := 0
	for _, profile := range profiles {
		used, err := s.store.ProFeaturesUsed(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count pro features for user %s: %w", profile.ID, err)
		}

		flag, flagged := Evaluate(RiskInputs{
			Profile:         profile,
			ProFeaturesUsed: used,
			ProCatalogSize:  catalogSize,
		}, now)
		if !flagged {
			continue
		}

		flags = append(flags, flag)
		if flag.Level == LevelCritical {
			critical++
			s.publishCriticalAlert(ctx, flag)
		}
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return severityRank[flags[i].Level] < severityRank[flags[j].Level]
	})

	s.logger.LogChurnFlags(ctx, len(flags), critical)
	return flags, nil
}

// publishCriticalAlert is best effort: a broker outage must not take churn
// detection down with it.
func (s *service) publishCriticalAlert(ctx context.Context, flag ChurnRiskFlag) {
	if s.producer == nil {
		return
	}
	alert := &alerts.ChurnAlert{
		UserID:     flag.UserID.String(),
		Email:      flag.Email,
		Tier:       string(flag.Tier),
		Level:      string(flag.Level),
		Reason:     flag.Reason,
		ComputedAt: flag.ComputedAt,
	}
	if err := s.producer.PublishChurnAlert(ctx, alert); err != nil {
		s.logger.WarnContext(ctx, "failed to publish churn alert", "user_id", flag.UserID.String(), "error", err.Error())
	}
}
