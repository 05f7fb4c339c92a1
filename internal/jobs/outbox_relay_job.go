package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every two seconds.
const DefaultOutboxRelaySchedule = "*/2 * * * * *"

// RelayHandler publishes one batch of pending outbox events.
type RelayHandler interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (int, error)
}

type OutboxRelayConfig struct {
	// Schedule is a cron expression with a seconds field.
	Schedule  string
	BatchSize int
	// Timeout bounds a single tick.
	Timeout time.Duration
}

// OutboxRelayJob publishes pending domain events on a schedule. A tick that is still
// running when the next one is due makes the next one skip.
type OutboxRelayJob struct {
	handler RelayHandler
	config  OutboxRelayConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxRelayJob(handler RelayHandler, config OutboxRelayConfig, logger *slog.Logger) *OutboxRelayJob {
	if config.Schedule == "" {
		config.Schedule = DefaultOutboxRelaySchedule
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &OutboxRelayJob{
		handler: handler,
		config:  config,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay. It fails on an invalid schedule or batch size.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.config.BatchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.config.Schedule, func() { j.tick(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.config.Schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) tick(cmd commands.RelayOutboxCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.config.Timeout)
	defer cancel()

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox events published", "count", published)
	}
}
