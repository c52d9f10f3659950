package recompute

import (
	"context"
	"time"

	"pulse/internal/shared/config"
	"pulse/internal/shared/constants"
	"pulse/pkg/logger"
)

// JobProcessor runs the recompute pass on a schedule. The computation never
// assumes a user action triggered it; the ticker and the manual endpoint
// drive the same idempotent operation.
type JobProcessor struct {
	service Service
	config  config.RecomputeConfig
	logger  *logger.Logger
	done    chan struct{}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(service Service, cfg config.RecomputeConfig, log *logger.Logger) *JobProcessor {
	return &JobProcessor{
		service: service,
		config:  cfg,
		logger:  log,
		done:    make(chan struct{}),
	}
}

// Start starts the scheduled recompute loop
func (jp *JobProcessor) Start(ctx context.Context) {
	interval := jp.config.Interval
	if interval <= 0 {
		interval = constants.RECOMPUTE_DEFAULT_INTERVAL
	}

	go jp.run(ctx, interval)
	jp.logger.Info("recompute job processor started", "interval", interval.String())
}

// Stop stops the scheduled recompute loop
func (jp *JobProcessor) Stop() {
	close(jp.done)
	jp.logger.Info("recompute job processor stopped")
}

func (jp *JobProcessor) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Warm the caches on startup instead of waiting a full interval.
	jp.runPass(ctx)

	for {
		select {
		case <-ticker.C:
			jp.runPass(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) runPass(ctx context.Context) {
	if _, err := jp.service.RunPass(ctx, TriggerScheduled); err != nil {
		jp.logger.ErrorWithContext(ctx, "scheduled recompute pass failed", err, nil)
	}
}

// GetJobStatus reports the processor configuration and the last pass
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	status := map[string]interface{}{
		"interval": jp.config.Interval.String(),
		"workers":  jp.config.Workers,
		"deadline": jp.config.Deadline.String(),
		"status":   "running",
	}
	if last := jp.service.LastSummary(); last != nil {
		status["last_pass"] = last
	}
	return status
}
