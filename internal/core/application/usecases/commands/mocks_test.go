package commands_test

import (
	"context"
	"testing"
	"time"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockQuotationRepository struct{ mock.Mock }

func (m *MockQuotationRepository) Add(ctx context.Context, q *quotation.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
func (m *MockQuotationRepository) Update(ctx context.Context, q *quotation.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
func (m *MockQuotationRepository) Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}
func (m *MockQuotationRepository) GetOpenByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, tenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}
func (m *MockQuotationRepository) GetLatestByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, tenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

type MockAwardRepository struct{ mock.Mock }

func (m *MockAwardRepository) Add(ctx context.Context, a *award.Award) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAwardRepository) Get(ctx context.Context, id kernel.UUID) (*award.Award, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*award.Award), args.Error(1)
}
func (m *MockAwardRepository) ListByTender(ctx context.Context, tenderID kernel.UUID) ([]*award.Award, error) {
	args := m.Called(ctx, tenderID)
	return args.Get(0).([]*award.Award), args.Error(1)
}
func (m *MockAwardRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*award.Award, error) {
	args := m.Called(ctx, quotationID)
	return args.Get(0).([]*award.Award), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}
func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}
func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) TenderRepository() ports.TenderRepository {
	args := m.Called()
	return args.Get(0).(ports.TenderRepository)
}
func (m *MockUoW) QuotationRepository() ports.QuotationRepository {
	args := m.Called()
	return args.Get(0).(ports.QuotationRepository)
}
func (m *MockUoW) AwardRepository() ports.AwardRepository {
	args := m.Called()
	return args.Get(0).(ports.AwardRepository)
}
func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockTenderUoWFactory struct{ mock.Mock }

func (m *MockTenderUoWFactory) Create() commands.TenderUoW {
	args := m.Called()
	return args.Get(0).(commands.TenderUoW)
}

type MockQuotationUoWFactory struct{ mock.Mock }

func (m *MockQuotationUoWFactory) Create() commands.QuotationUoW {
	args := m.Called()
	return args.Get(0).(commands.QuotationUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

var (
	startsAt      = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	adjudicatedAt = time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// eventTypes matches an outbox batch by its event types, in order.
func eventTypes(types ...string) any {
	return mock.MatchedBy(func(messages []ports.OutboxMessage) bool {
		if len(messages) != len(types) {
			return false
		}
		for i, msg := range messages {
			if msg.EventType != types[i] {
				return false
			}
		}
		return true
	})
}

func newTender(t *testing.T, quantities ...int64) *tender.Tender {
	t.Helper()
	items := make([]tender.RequestedItem, 0, len(quantities))
	for _, qty := range quantities {
		item, err := tender.NewRequestedItem(kernel.NewUUID(), kernel.NewUUID(), "Gauze", decimal.NewFromInt(qty))
		require.NoError(t, err)
		items = append(items, item)
	}
	tn, err := tender.NewTender(kernel.NewUUID(), "LIC-1", "INT-1", startsAt, startsAt.Add(72*time.Hour), kernel.NewUUID(), items)
	require.NoError(t, err)
	return tn
}

func openQuotation(t *testing.T, tn *tender.Tender) *quotation.Quotation {
	t.Helper()
	q, err := quotation.NewQuotation(kernel.NewUUID(), tn, "COT-1", "USD", "30 days", startsAt)
	require.NoError(t, err)
	return q
}

// finalizedQuotation prices every line at 100 per unit with 22% tax and
// finalizes the quotation.
func finalizedQuotation(t *testing.T, tn *tender.Tender) *quotation.Quotation {
	t.Helper()
	q := openQuotation(t, tn)
	for _, line := range q.Lines() {
		_, err := q.UpdateLine(line.ID(), quotation.LinePatch{
			UnitPriceWithoutTax: ptr(d("100")),
			TaxPercentage:       ptr(d("22")),
		})
		require.NoError(t, err)
	}
	require.NoError(t, q.Finalize())
	return q
}
