package services_test

import (
	"testing"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/domain/services"
	"tendering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adjudicatedAt = time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// finalizedQuotation builds a tender with the given requested quantities and a
// finalized quotation whose lines are all priced at 100 per unit with 22% tax.
func finalizedQuotation(t *testing.T, quantities ...int64) (*tender.Tender, *quotation.Quotation) {
	t.Helper()
	items := make([]tender.RequestedItem, 0, len(quantities))
	for _, qty := range quantities {
		item, err := tender.NewRequestedItem(kernel.NewUUID(), kernel.NewUUID(), "Gauze", decimal.NewFromInt(qty))
		require.NoError(t, err)
		items = append(items, item)
	}
	startsAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tn, err := tender.NewTender(kernel.NewUUID(), "LIC-1", "", startsAt, startsAt.Add(time.Hour), kernel.NewUUID(), items)
	require.NoError(t, err)

	q, err := quotation.NewQuotation(kernel.NewUUID(), tn, "COT-1", "USD", "", startsAt)
	require.NoError(t, err)
	for _, line := range q.Lines() {
		_, err = q.UpdateLine(line.ID(), quotation.LinePatch{
			UnitPriceWithoutTax: ptr(d("100")),
			TaxPercentage:       ptr(d("22")),
		})
		require.NoError(t, err)
	}
	require.NoError(t, q.Finalize())
	return tn, q
}

func TestAwardAggregator_FromResolution(t *testing.T) {
	aggregator := services.NewAwardAggregator()

	t.Run("single full award is total", func(t *testing.T) {
		_, q := finalizedQuotation(t, 10)
		res, err := q.ResolveLine(q.Lines()[0].ID(), quotation.AwardFull{})
		require.NoError(t, err)

		a, err := aggregator.FromResolution(kernel.NewUUID(), q, res, adjudicatedAt)

		require.NoError(t, err)
		assert.Equal(t, award.Total, a.Status())
		assert.True(t, d("10").Equal(a.TotalQuantity()))
		assert.True(t, d("1000").Equal(a.TotalPriceWithoutTax()))
		assert.True(t, d("1220").Equal(a.TotalPriceWithTax()))
		assert.True(t, a.QuotationID().IsEqual(q.ID()))
		assert.True(t, a.TenderID().IsEqual(q.TenderID()))
	})

	t.Run("single partial award is partial", func(t *testing.T) {
		_, q := finalizedQuotation(t, 10)
		res, err := q.ResolveLine(q.Lines()[0].ID(), quotation.AwardPartial{Quantity: d("4")})
		require.NoError(t, err)

		a, err := aggregator.FromResolution(kernel.NewUUID(), q, res, adjudicatedAt)

		require.NoError(t, err)
		assert.Equal(t, award.Partial, a.Status())
		assert.True(t, d("400").Equal(a.TotalPriceWithoutTax()))
		assert.True(t, d("488").Equal(a.TotalPriceWithTax()))
	})

	t.Run("rejection only award is partial with zero totals", func(t *testing.T) {
		_, q := finalizedQuotation(t, 10)
		res, err := q.ResolveLine(q.Lines()[0].ID(), quotation.Reject{
			Competitor: quotation.Competitor{Name: "Acme", TaxID: "99-1", Price: d("90")},
		})
		require.NoError(t, err)

		a, err := aggregator.FromResolution(kernel.NewUUID(), q, res, adjudicatedAt)

		require.NoError(t, err)
		assert.Equal(t, award.Partial, a.Status())
		assert.True(t, a.TotalPriceWithTax().IsZero())
		require.Len(t, a.NonAwardedItems(), 1)
		assert.Equal(t, "99-1", a.NonAwardedItems()[0].CompetitorTaxID())
	})
}

func TestAwardAggregator_CreateAward(t *testing.T) {
	aggregator := services.NewAwardAggregator()
	full := func(t *testing.T) award.AwardedItem {
		item, err := award.NewAwardedItem(kernel.NewUUID(), nil, "A", d("5"), d("5"), d("10"), d("10"))
		require.NoError(t, err)
		return item
	}
	partial := func(t *testing.T) award.AwardedItem {
		item, err := award.NewAwardedItem(kernel.NewUUID(), nil, "B", d("1"), d("5"), d("20"), d("0"))
		require.NoError(t, err)
		return item
	}
	lost := func(t *testing.T) award.NonAwardedItem {
		item, err := award.NewNonAwardedItem(kernel.NewUUID(), nil, "C", "Acme", "", d("1"))
		require.NoError(t, err)
		return item
	}

	tests := []struct {
		name       string
		awarded    []award.AwardedItem
		nonAwarded []award.NonAwardedItem
		want       award.Status
	}{
		{"all full", []award.AwardedItem{full(t), full(t)}, nil, award.Total},
		{"full and partial", []award.AwardedItem{full(t), partial(t)}, nil, award.Partial},
		{"full with rejection", []award.AwardedItem{full(t)}, []award.NonAwardedItem{lost(t)}, award.Partial},
		{"only rejections", nil, []award.NonAwardedItem{lost(t), lost(t)}, award.Partial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := aggregator.CreateAward(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				tt.awarded, tt.nonAwarded, adjudicatedAt)

			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Status())
		})
	}

	t.Run("per item tax", func(t *testing.T) {
		a, err := aggregator.CreateAward(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]award.AwardedItem{full(t), partial(t)}, nil, adjudicatedAt)

		require.NoError(t, err)
		assert.True(t, d("6").Equal(a.TotalQuantity()))
		assert.True(t, d("70").Equal(a.TotalPriceWithoutTax()))
		assert.True(t, d("75").Equal(a.TotalPriceWithTax()))
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := aggregator.CreateAward(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil, adjudicatedAt)

		require.ErrorIs(t, err, errs.ErrEmptyAward)
	})
}
