package campaigns

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
	"pulse/pkg/logger"
)

// Service defines the campaign click analytics service interface
type Service interface {
	// ClassifyClicks classifies any unclassified clicks for the campaign,
	// persists their verdicts and returns the aggregate report.
	ClassifyClicks(ctx context.Context, campaignID uuid.UUID) (*ClickStats, error)
}

// service implements the Service interface
type service struct {
	store        eventstore.Store
	cacheService cache.Service
	logger       *logger.Logger
	rules        []Heuristic
}

// NewService creates a new campaign analytics service instance. A nil rule
// set falls back to the default heuristics.
func NewService(store eventstore.Store, cacheService cache.Service, log *logger.Logger, rules []Heuristic) Service {
	if rules == nil {
		rules = DefaultHeuristics()
	}
	return &service{store: store, cacheService: cacheService, logger: log, rules: rules}
}

func (s *service) ClassifyClicks(ctx context.Context, campaignID uuid.UUID) (*ClickStats, error) {
	cacheKey := constants.BuildCampaignClicksKey(campaignID.String())

	var stats ClickStats
	err := s.cacheService.GetOrSet(ctx, cacheKey, constants.TTL_CAMPAIGN_CLICKS, func() (interface{}, error) {
		return s.classify(ctx, campaignID)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) classify(ctx context.Context, campaignID uuid.UUID) (*ClickStats, error) {
	clicks, err := s.store.GetCampaignClicks(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign clicks: %w", err)
	}
	emails, err := s.store.GetCampaignEmailEvents(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign email events: %w", err)
	}

	if len(clicks) == 0 && len(emails) == 0 {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, errs.ErrNotFound)
	}

	now := time.Now().UTC()

	// Webhook-only campaign: aggregate counts exist but no per-click rows.
	if len(clicks) == 0 {
		stats := AggregateResend(campaignID, emails, now)
		return &stats, nil
	}

	verdicts := Classify(clicks, sendTimes(emails), s.rules)
	if err := s.persistNewVerdicts(ctx, clicks, verdicts); err != nil {
		return nil, err
	}

	stats := Aggregate(campaignID, verdicts, emails, now)
	s.logger.LogCampaignClassified(ctx, campaignID.String(), stats.TotalClicks, stats.Tracked.BotClicks)
	return &stats, nil
}

// sendTimes maps each contact to their first send in the campaign.
func sendTimes(emails []eventstore.EmailEvent) map[uuid.UUID]time.Time {
	sentAt := make(map[uuid.UUID]time.Time)
	for _, event := range emails {
		if event.EventType != eventstore.EmailSent {
			continue
		}
		if existing, ok := sentAt[event.ContactID]; !ok || event.OccurredAt.Before(existing) {
			sentAt[event.ContactID] = event.OccurredAt
		}
	}
	return sentAt
}

func (s *service) persistNewVerdicts(ctx context.Context, clicks []eventstore.CampaignClick, verdicts []Verdict) error {
	for i, verdict := range verdicts {
		if clicks[i].Classified {
			continue
		}
		if err := s.store.SaveClickClassification(ctx, verdict.Click.ID, verdict.IsBot); err != nil {
			return fmt.Errorf("failed to persist click classification: %w", err)
		}
	}
	return nil
}
