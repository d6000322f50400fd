package jobs

import (
	"context"
	"log/slog"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultOutboxRelaySchedule = "*/5 * * * * *"
	DefaultRelayBatchSize      = 100
)

// RelayObserver is told how each relay run went.
type RelayObserver interface {
	ObservePublished(n int)
	ObservePublishFailure()
}

type nopRelayObserver struct{}

func (nopRelayObserver) ObservePublished(int)   {}
func (nopRelayObserver) ObservePublishFailure() {}

// OutboxRelayJob moves committed outbox messages to the message broker.
// Delivery is at least once: a message is marked only after the broker
// accepted it, so a failed mark republishes it on the next run.
type OutboxRelayJob struct {
	outbox    ports.OutboxRepository
	publisher ports.MessagePublisher
	observer  RelayObserver
	schedule  string
	batchSize int
	timeout   time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay. An empty schedule falls back to
// DefaultOutboxRelaySchedule and a non-positive batch size to
// DefaultRelayBatchSize.
func NewOutboxRelayJob(
	outbox ports.OutboxRepository,
	publisher ports.MessagePublisher,
	observer RelayObserver,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if observer == nil {
		observer = nopRelayObserver{}
	}
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		outbox:    outbox,
		publisher: publisher,
		observer:  observer,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		now:       time.Now,
		cron:      newCron(),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Relay publishes one batch of unpublished messages and returns how many
// were delivered.
func (j *OutboxRelayJob) Relay(ctx context.Context) (int, error) {
	messages, err := j.outbox.ListUnpublished(ctx, j.batchSize)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err := j.publisher.Publish(ctx, messages); err != nil {
		j.observer.ObservePublishFailure()
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err := j.outbox.MarkPublished(ctx, ids, j.now().UTC()); err != nil {
		return 0, err
	}

	j.observer.ObservePublished(len(messages))
	return len(messages), nil
}

func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		n, err := j.Relay(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
			return
		}
		if n > 0 {
			j.logger.DebugContext(ctx, "Outbox messages published", "count", n)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// newCron runs second-granularity schedules and skips a tick while the
// previous run of the same job is still busy.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
