package jobs_test

import (
	"errors"
	"testing"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"
	"tendering/internal/jobs"
	"tendering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func outboxMessages(n int) ([]ports.OutboxMessage, []kernel.UUID) {
	messages := make([]ports.OutboxMessage, 0, n)
	ids := make([]kernel.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := kernel.NewUUID()
		messages = append(messages, ports.OutboxMessage{
			ID:         id,
			EventType:  ports.EventAwardCreated,
			Key:        "tender-1",
			Payload:    []byte(`{}`),
			OccurredAt: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		})
		ids = append(ids, id)
	}
	return messages, ids
}

func TestOutboxRelayJob_Relay_PublishesAndMarks(t *testing.T) {
	ctx := t.Context()
	messages, ids := outboxMessages(2)

	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	mock.InOrder(
		outbox.On("ListUnpublished", ctx, 10).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, ids, mock.AnythingOfType("time.Time")).Return(nil).Once(),
	)
	registry := metrics.NewRegistry()

	job := jobs.NewOutboxRelayJob(outbox, publisher, registry, "", 10, discardLogger())
	n, err := job.Relay(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 2, testutil.ToFloat64(registry.OutboxPublished), 0)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxRelayJob_Relay_NothingToPublish(t *testing.T) {
	ctx := t.Context()
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	outbox.On("ListUnpublished", ctx, jobs.DefaultRelayBatchSize).Return([]ports.OutboxMessage{}, nil).Once()

	job := jobs.NewOutboxRelayJob(outbox, publisher, nil, "", 0, discardLogger())
	n, err := job.Relay(ctx)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	outbox.AssertExpectations(t)
}

func TestOutboxRelayJob_Relay_BrokerFailureLeavesMessagesUnpublished(t *testing.T) {
	ctx := t.Context()
	messages, _ := outboxMessages(1)
	brokerErr := errors.New("broker unavailable")

	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	outbox.On("ListUnpublished", ctx, 10).Return(messages, nil).Once()
	publisher.On("Publish", ctx, messages).Return(brokerErr).Once()
	registry := metrics.NewRegistry()

	job := jobs.NewOutboxRelayJob(outbox, publisher, registry, "", 10, discardLogger())
	n, err := job.Relay(ctx)

	require.ErrorIs(t, err, brokerErr)
	assert.Zero(t, n)
	assert.InDelta(t, 1, testutil.ToFloat64(registry.OutboxFailures), 0)
	outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
}

func TestOutboxRelayJob_Relay_ListFailure(t *testing.T) {
	ctx := t.Context()
	storeErr := errors.New("storage down")
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	outbox.On("ListUnpublished", ctx, 10).Return(nil, storeErr).Once()

	job := jobs.NewOutboxRelayJob(outbox, publisher, nil, "", 10, discardLogger())
	_, err := job.Relay(ctx)

	require.ErrorIs(t, err, storeErr)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOutboxRelayJob_Start_RejectsInvalidSchedule(t *testing.T) {
	job := jobs.NewOutboxRelayJob(new(MockOutboxRepository), new(MockPublisher), nil, "not a schedule", 0, discardLogger())

	require.Error(t, job.Start())
}
