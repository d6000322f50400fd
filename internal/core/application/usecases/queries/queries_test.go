package queries_test

import (
	"errors"
	"testing"
	"time"

	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetTenderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10, 5)
	reader := newMockReader()
	reader.tenders.On("Get", ctx, tn.ID()).Return(tn, nil).Once()

	query, err := queries.NewGetTenderQuery(tn.ID())
	require.NoError(t, err)

	view, err := queries.NewGetTenderQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "Pending", view.Status)
	assert.Equal(t, "LIC-1", view.CallReference)
	require.Len(t, view.Items, 2)
	assert.True(t, d("10").Equal(view.Items[0].Quantity))
	reader.tenders.AssertExpectations(t)
}

func TestGetTenderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := newMockReader()
	reader.tenders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("tenderID", id)).Once()

	query, err := queries.NewGetTenderQuery(id)
	require.NoError(t, err)

	_, err = queries.NewGetTenderQueryHandler(reader).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetQuotationQueryHandler_Handle_TotalsAndTaxSplit(t *testing.T) {
	ctx := t.Context()
	q := pricedQuotation(t, newTender(t, 10, 5, 1), "22", "10", "22")
	reader := newMockReader()
	reader.quotations.On("Get", ctx, q.ID()).Return(q, nil).Once()

	query, err := queries.NewGetQuotationQuery(q.ID())
	require.NoError(t, err)

	view, err := queries.NewGetQuotationQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "Open", view.State)
	require.Len(t, view.Lines, 3)
	assert.False(t, view.Lines[0].Provisional)
	assert.True(t, d("1000").Equal(view.Lines[0].TotalWithoutTax))
	assert.True(t, d("1600").Equal(view.SubtotalWithoutTax))
	assert.True(t, d("292").Equal(view.TaxTotal))
	assert.True(t, d("1892").Equal(view.TotalWithTax))

	require.Len(t, view.TaxBreakdown, 2)
	assert.True(t, d("10").Equal(view.TaxBreakdown[0].Percentage))
	assert.True(t, d("500").Equal(view.TaxBreakdown[0].Base))
	assert.True(t, d("50").Equal(view.TaxBreakdown[0].Tax))
	assert.True(t, d("22").Equal(view.TaxBreakdown[1].Percentage))
	assert.True(t, d("1100").Equal(view.TaxBreakdown[1].Base))
	assert.True(t, d("242").Equal(view.TaxBreakdown[1].Tax))
}

func TestListAwardsQuery_Validate(t *testing.T) {
	err := queries.ListAwardsQuery{}.Validate()

	require.ErrorIs(t, err, queries.ErrListAwardsQueryIsNotConstructed)
}

func TestListAwardsQueryHandler_Handle(t *testing.T) {
	tn := newTender(t, 10)
	q := pricedQuotation(t, tn, "22")
	require.NoError(t, q.Finalize())
	res, err := q.ResolveLine(q.Lines()[0].ID(), quotation.AwardFull{})
	require.NoError(t, err)
	a, err := award.NewAward(kernel.NewUUID(), q.ID(), tn.ID(), award.Total, res.AwardedItems(), nil, time.Now())
	require.NoError(t, err)

	t.Run("by tender", func(t *testing.T) {
		ctx := t.Context()
		reader := newMockReader()
		reader.tenders.On("Get", ctx, tn.ID()).Return(tn, nil).Once()
		reader.awards.On("ListByTender", ctx, tn.ID()).Return([]*award.Award{a}, nil).Once()

		query, err := queries.NewListAwardsByTenderQuery(tn.ID())
		require.NoError(t, err)

		views, err := queries.NewListAwardsQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Total", views[0].Status)
		require.Len(t, views[0].Awarded, 1)
		assert.True(t, d("1220").Equal(views[0].TotalPriceWithTax))
		reader.awards.AssertNotCalled(t, "ListByQuotation", mock.Anything, mock.Anything)
	})

	t.Run("by quotation without awards", func(t *testing.T) {
		ctx := t.Context()
		reader := newMockReader()
		reader.quotations.On("Get", ctx, q.ID()).Return(q, nil).Once()
		reader.awards.On("ListByQuotation", ctx, q.ID()).Return([]*award.Award{}, nil).Once()

		query, err := queries.NewListAwardsByQuotationQuery(q.ID())
		require.NoError(t, err)

		views, err := queries.NewListAwardsQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("unknown tender", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		reader := newMockReader()
		reader.tenders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("tenderID", id)).Once()

		query, err := queries.NewListAwardsByTenderQuery(id)
		require.NoError(t, err)

		_, err = queries.NewListAwardsQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		reader.awards.AssertNotCalled(t, "ListByTender", mock.Anything, mock.Anything)
	})
}

func TestRenderQuotationPdfQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10)
	q := pricedQuotation(t, tn, "22")
	reader := newMockReader()
	reader.quotations.On("Get", ctx, q.ID()).Return(q, nil).Once()
	reader.tenders.On("Get", ctx, tn.ID()).Return(tn, nil).Once()
	renderer := new(MockRenderer)
	renderer.On("Render", ctx, tn, q).Return([]byte("%PDF-1.3"), nil).Once()

	query, err := queries.NewRenderQuotationPdfQuery(q.ID())
	require.NoError(t, err)

	doc, err := queries.NewRenderQuotationPdfQueryHandler(reader, renderer).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "quotation-COT_7_2024.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), doc.Content)
	assert.Equal(t, quotation.Open, q.State())
	renderer.AssertExpectations(t)
}

func TestRenderQuotationPdfQueryHandler_Handle_RendererError(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10)
	q := pricedQuotation(t, tn, "22")
	reader := newMockReader()
	reader.quotations.On("Get", ctx, q.ID()).Return(q, nil).Once()
	reader.tenders.On("Get", ctx, tn.ID()).Return(tn, nil).Once()
	renderErr := errors.New("font missing")
	renderer := new(MockRenderer)
	renderer.On("Render", ctx, tn, q).Return(nil, renderErr).Once()

	query, err := queries.NewRenderQuotationPdfQuery(q.ID())
	require.NoError(t, err)

	_, err = queries.NewRenderQuotationPdfQueryHandler(reader, renderer).Handle(ctx, query)

	require.ErrorIs(t, err, renderErr)
}
