package quotation_test

import (
	"testing"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finalized returns a finalized quotation whose first line is priced at
// 100 per unit with 22% tax.
func finalized(t *testing.T, quantities ...int64) (*quotation.Quotation, kernel.UUID) {
	t.Helper()
	q := newQuotation(t, quantities...)
	lineID := q.Lines()[0].ID()
	_, err := q.UpdateLine(lineID, quotation.LinePatch{
		UnitPriceWithoutTax: ptr(d("100")),
		TaxPercentage:       ptr(d("22")),
	})
	require.NoError(t, err)
	require.NoError(t, q.Finalize())
	return q, lineID
}

func TestResolveLine_AwardFull(t *testing.T) {
	q, lineID := finalized(t, 10)

	res, err := q.ResolveLine(lineID, quotation.AwardFull{})

	require.NoError(t, err)
	assert.Equal(t, quotation.Awarded, res.State)
	require.NotNil(t, res.Awarded)
	assert.Nil(t, res.NonAwarded)
	assert.True(t, res.Awarded.IsFull())
	assert.True(t, d("10").Equal(res.Awarded.Quantity()))
	assert.True(t, d("100").Equal(res.Awarded.UnitPriceWithoutTax()))

	line, _ := q.Line(lineID)
	assert.Equal(t, quotation.Awarded, line.AwardState())
	assert.True(t, d("10").Equal(line.AwardedQuantity()))
}

func TestResolveLine_AwardPartial(t *testing.T) {
	t.Run("partial quantity", func(t *testing.T) {
		q, lineID := finalized(t, 10)

		res, err := q.ResolveLine(lineID, quotation.AwardPartial{Quantity: d("4")})

		require.NoError(t, err)
		assert.Equal(t, quotation.PartiallyAwarded, res.State)
		assert.False(t, res.Awarded.IsFull())
		line, _ := q.Line(lineID)
		assert.True(t, d("4").Equal(line.AwardedQuantity()))
	})

	t.Run("full quantity is normalised to full award", func(t *testing.T) {
		q, lineID := finalized(t, 10)

		res, err := q.ResolveLine(lineID, quotation.AwardPartial{Quantity: d("10")})

		require.NoError(t, err)
		assert.Equal(t, quotation.Awarded, res.State)
		require.NotNil(t, res.Awarded)
		assert.True(t, res.Awarded.IsFull())
		line, _ := q.Line(lineID)
		assert.Equal(t, quotation.Awarded, line.AwardState())
		assert.True(t, d("10").Equal(line.AwardedQuantity()))
	})

	t.Run("rejects out of range quantities", func(t *testing.T) {
		for _, qty := range []string{"0", "-1", "10.5"} {
			q, lineID := finalized(t, 10)

			_, err := q.ResolveLine(lineID, quotation.AwardPartial{Quantity: d(qty)})

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, qty)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			line, _ := q.Line(lineID)
			assert.Equal(t, quotation.Pending, line.AwardState())
		}
	})
}

func TestResolveLine_AwardPartialBeyondStoredScale(t *testing.T) {
	q, lineID := finalized(t, 4)

	_, err := q.ResolveLine(lineID, quotation.AwardPartial{Quantity: d("3.99999")})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	line, _ := q.Line(lineID)
	assert.Equal(t, quotation.Pending, line.AwardState())
	assert.True(t, line.AwardedQuantity().IsZero())
}

func TestResolveLine_Reject(t *testing.T) {
	t.Run("records competitor on non awarded item", func(t *testing.T) {
		q, lineID := finalized(t, 10)

		res, err := q.ResolveLine(lineID, quotation.Reject{
			Competitor: quotation.Competitor{Name: "Acme Pharma", Price: d("95")},
		})

		require.NoError(t, err)
		assert.Equal(t, quotation.NotAwarded, res.State)
		assert.Nil(t, res.Awarded)
		require.NotNil(t, res.NonAwarded)
		assert.Equal(t, "Acme Pharma", res.NonAwarded.CompetitorName())
		assert.Equal(t, award.DefaultCompetitorTaxID, res.NonAwarded.CompetitorTaxID())
		assert.Empty(t, res.AwardedItems())
		assert.Len(t, res.NonAwardedItems(), 1)

		line, _ := q.Line(lineID)
		assert.Equal(t, quotation.NotAwarded, line.AwardState())
		assert.True(t, line.AwardedQuantity().IsZero())
	})

	t.Run("requires competitor name", func(t *testing.T) {
		q, lineID := finalized(t, 10)

		_, err := q.ResolveLine(lineID, quotation.Reject{Competitor: quotation.Competitor{Price: d("1")}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		line, _ := q.Line(lineID)
		assert.Equal(t, quotation.Pending, line.AwardState())
	})
}

func TestResolveLine_Transitions(t *testing.T) {
	t.Run("second decision on the same line is an invalid transition", func(t *testing.T) {
		decisions := []quotation.Decision{
			quotation.AwardFull{},
			quotation.AwardPartial{Quantity: d("2")},
			quotation.Reject{Competitor: quotation.Competitor{Name: "Acme"}},
		}
		for _, first := range decisions {
			for _, second := range decisions {
				q, lineID := finalized(t, 10)
				_, err := q.ResolveLine(lineID, first)
				require.NoError(t, err)

				_, err = q.ResolveLine(lineID, second)

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	})

	t.Run("open quotation cannot resolve lines", func(t *testing.T) {
		q := newQuotation(t, 10)

		_, err := q.ResolveLine(q.Lines()[0].ID(), quotation.AwardFull{})

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown line", func(t *testing.T) {
		q, _ := finalized(t, 10)

		_, err := q.ResolveLine(kernel.NewUUID(), quotation.AwardFull{})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("nil decision", func(t *testing.T) {
		q, lineID := finalized(t, 10)

		_, err := q.ResolveLine(lineID, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestResolveLine_QuantityConservation(t *testing.T) {
	q, _ := finalized(t, 10, 7, 3)
	decisions := []quotation.Decision{
		quotation.AwardPartial{Quantity: decimal.NewFromInt(6)},
		quotation.AwardFull{},
		quotation.Reject{Competitor: quotation.Competitor{Name: "Acme"}},
	}

	for i, line := range q.Lines() {
		res, err := q.ResolveLine(line.ID(), decisions[i])
		require.NoError(t, err)

		awarded := decimal.Zero
		for _, item := range res.AwardedItems() {
			awarded = awarded.Add(item.Quantity())
		}
		assert.True(t, awarded.LessThanOrEqual(line.Quantity()))
		assert.True(t, awarded.Equal(line.AwardedQuantity()))
	}
}

func TestAwardState(t *testing.T) {
	assert.False(t, quotation.Pending.IsResolved())
	assert.True(t, quotation.Awarded.IsResolved())
	assert.True(t, quotation.PartiallyAwarded.IsWon())
	assert.False(t, quotation.NotAwarded.IsWon())
	require.Error(t, quotation.UnknownAwardState.Validate())

	for _, s := range []quotation.AwardState{quotation.Pending, quotation.Awarded, quotation.PartiallyAwarded, quotation.NotAwarded} {
		parsed, err := quotation.ParseAwardState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := quotation.ParseAwardState("Unknown")
	require.Error(t, err)
}
