package queries_test

import (
	"context"
	"testing"
	"time"

	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTenderRepository struct {
	mock.Mock
	ports.TenderRepository
}

func (m *MockTenderRepository) Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tender.Tender), args.Error(1)
}

type MockQuotationRepository struct {
	mock.Mock
	ports.QuotationRepository
}

func (m *MockQuotationRepository) Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

type MockAwardRepository struct {
	mock.Mock
	ports.AwardRepository
}

func (m *MockAwardRepository) ListByTender(ctx context.Context, tenderID kernel.UUID) ([]*award.Award, error) {
	args := m.Called(ctx, tenderID)
	return args.Get(0).([]*award.Award), args.Error(1)
}

func (m *MockAwardRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*award.Award, error) {
	args := m.Called(ctx, quotationID)
	return args.Get(0).([]*award.Award), args.Error(1)
}

type MockReader struct {
	tenders    *MockTenderRepository
	quotations *MockQuotationRepository
	awards     *MockAwardRepository
}

func newMockReader() *MockReader {
	return &MockReader{
		tenders:    new(MockTenderRepository),
		quotations: new(MockQuotationRepository),
		awards:     new(MockAwardRepository),
	}
}

func (m *MockReader) TenderRepository() ports.TenderRepository       { return m.tenders }
func (m *MockReader) QuotationRepository() ports.QuotationRepository { return m.quotations }
func (m *MockReader) AwardRepository() ports.AwardRepository         { return m.awards }
func (m *MockReader) Create() queries.Reader                         { return m }

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) Render(ctx context.Context, t *tender.Tender, q *quotation.Quotation) ([]byte, error) {
	args := m.Called(ctx, t, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) ContentType() string {
	return "application/pdf"
}

var startsAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
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

// pricedQuotation prices the lines of a new quotation with the given tax
// percentages at 100 per unit.
func pricedQuotation(t *testing.T, tn *tender.Tender, taxes ...string) *quotation.Quotation {
	t.Helper()
	q, err := quotation.NewQuotation(kernel.NewUUID(), tn, "COT 7/2024", "USD", "", startsAt)
	require.NoError(t, err)
	for i, line := range q.Lines() {
		_, err = q.UpdateLine(line.ID(), quotation.LinePatch{
			UnitPriceWithoutTax: ptr(d("100")),
			TaxPercentage:       ptr(d(taxes[i])),
		})
		require.NoError(t, err)
	}
	return q
}
