package recompute

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pulse/internal/alerts"
	"pulse/internal/eventstore"
	"pulse/internal/health"
	"pulse/internal/segments"
	"pulse/internal/shared/config"
	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
	"pulse/pkg/logger"
)

// Service defines the batch recompute service interface
type Service interface {
	// RunPass recomputes every user's derived metrics and drops the stale
	// aggregate caches. Idempotent: outputs are pure functions of event
	// state, so concurrent passes are safe and last-writer-wins.
	RunPass(ctx context.Context, trigger string) (*PassSummary, error)

	// LastSummary returns the most recent finished pass, or nil.
	LastSummary() *PassSummary
}

// service implements the Service interface
type service struct {
	store          eventstore.Store
	healthService  health.Service
	segmentService segments.Service
	cacheService   cache.Service
	producer       alerts.Producer
	config         config.RecomputeConfig
	logger         *logger.Logger

	mu          sync.Mutex
	lastSummary *PassSummary
}

// NewService creates a new recompute service instance
func NewService(
	store eventstore.Store,
	healthService health.Service,
	segmentService segments.Service,
	cacheService cache.Service,
	producer alerts.Producer,
	cfg config.RecomputeConfig,
	log *logger.Logger,
) Service {
	return &service{
		store:          store,
		healthService:  healthService,
		segmentService: segmentService,
		cacheService:   cacheService,
		producer:       producer,
		config:         cfg,
		logger:         log,
	}
}

func (s *service) RunPass(ctx context.Context, trigger string) (*PassSummary, error) {
	startedAt := time.Now().UTC()

	deadline := s.config.Deadline
	if deadline <= 0 {
		deadline = constants.RECOMPUTE_DEFAULT_DEADLINE
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for recompute: %w", err)
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = constants.RECOMPUTE_DEFAULT_WORKERS
	}

	// Users are independent, so the pass fans out across a bounded pool.
	jobs := make(chan uuid.UUID)
	var processed, failures int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				if ctx.Err() != nil {
					return
				}
				if err := s.recomputeUser(ctx, userID); err != nil {
					atomic.AddInt64(&failures, 1)
					s.logger.WarnContext(ctx, "user recompute failed", "user_id", userID.String(), "error", err.Error())
					continue
				}
				atomic.AddInt64(&processed, 1)
			}
		}()
	}

feed:
	for _, userID := range userIDs {
		select {
		case jobs <- userID:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	// A stalled store abandons the pass; per-user results already written
	// are valid on their own, but no completion is reported.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recompute pass abandoned: %w", err)
	}

	s.invalidateAggregates(ctx)

	finishedAt := time.Now().UTC()
	summary := &PassSummary{
		Trigger:        trigger,
		UsersProcessed: int(processed),
		Failures:       int(failures),
		Duration:       finishedAt.Sub(startedAt),
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
	}

	s.mu.Lock()
	s.lastSummary = summary
	s.mu.Unlock()

	s.logger.LogRecomputePass(ctx, summary.UsersProcessed, summary.Failures, summary.Duration)
	s.publishCompleted(ctx, summary)
	return summary, nil
}

func (s *service) LastSummary() *PassSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSummary
}

func (s *service) recomputeUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.healthService.ComputeHealthScore(ctx, userID); err != nil {
		// A profile deleted mid-pass is not a failure.
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if _, err := s.segmentService.ComputeSegment(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *service) invalidateAggregates(ctx context.Context) {
	for _, pattern := range constants.AggregateInvalidationPatterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate aggregate cache", "pattern", pattern, "error", err.Error())
		}
	}
}

func (s *service) publishCompleted(ctx context.Context, summary *PassSummary) {
	if s.producer == nil {
		return
	}
	event := &alerts.RecomputeEvent{
		UsersProcessed: summary.UsersProcessed,
		Failures:       summary.Failures,
		DurationMs:     summary.Duration.Milliseconds(),
		FinishedAt:     summary.FinishedAt,
		Trigger:        summary.Trigger,
	}
	if err := s.producer.PublishRecomputeCompleted(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish recompute event", "error", err.Error())
	}
}
