package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}
func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}
func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error {
	args := m.Called(ctx, ids, publishedAt)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type MockTenderRepository struct{ mock.Mock }

func (m *MockTenderRepository) Add(ctx context.Context, t *tender.Tender) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTenderRepository) Update(ctx context.Context, t *tender.Tender) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTenderRepository) Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tender.Tender), args.Error(1)
}
func (m *MockTenderRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) ReconcileTenderStatus(ctx context.Context, cmd commands.ReconcileTenderStatusCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

func forTender(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.ReconcileTenderStatusCommand) bool {
		return cmd.TenderID().IsEqual(id)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
