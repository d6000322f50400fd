package tender_test

import (
	"testing"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	startsAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline = startsAt.Add(14 * 24 * time.Hour)
)

func newItem(t *testing.T, qty int64) tender.RequestedItem {
	t.Helper()
	item, err := tender.NewRequestedItem(kernel.NewUUID(), kernel.NewUUID(), "Paracetamol 500mg", decimal.NewFromInt(qty))
	require.NoError(t, err)
	return item
}

func TestNewRequestedItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		id := kernel.NewUUID()
		productID := kernel.NewUUID()

		item, err := tender.NewRequestedItem(id, productID, "  Gauze  ", decimal.NewFromInt(3))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(id))
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, "Gauze", item.Description())
		assert.True(t, decimal.NewFromInt(3).Equal(item.Quantity()))
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := tender.NewRequestedItem(kernel.NewUUID(), kernel.NewUUID(), "Gauze", decimal.Zero)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := tender.NewRequestedItem(kernel.UUID{}, kernel.UUID{}, " ", decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "requested item id")
		assert.Contains(t, err.Error(), "product id")
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "requested quantity")
	})

	t.Run("zero value item is not constructed", func(t *testing.T) {
		var item tender.RequestedItem
		assert.Equal(t, tender.ErrRequestedItemIsNotConstructed, item.Validate())
	})
}

func TestNewTender(t *testing.T) {
	t.Run("should open tender in pending status", func(t *testing.T) {
		id := kernel.NewUUID()
		requester := kernel.NewUUID()
		items := []tender.RequestedItem{newItem(t, 10), newItem(t, 5)}

		tn, err := tender.NewTender(id, "LIC-2024-001", "INT-7", startsAt, deadline, requester, items)

		require.NoError(t, err)
		require.NoError(t, tn.Validate())
		assert.True(t, tn.ID().IsEqual(id))
		assert.Equal(t, "LIC-2024-001", tn.CallReference())
		assert.Equal(t, "INT-7", tn.InternalReference())
		assert.Equal(t, startsAt, tn.StartsAt())
		assert.Equal(t, deadline, tn.Deadline())
		assert.True(t, tn.RequesterID().IsEqual(requester))
		assert.Len(t, tn.Items(), 2)
		assert.Equal(t, tender.Pending, tn.Status())
	})

	t.Run("should require deadline after start", func(t *testing.T) {
		_, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, startsAt, kernel.NewUUID(),
			[]tender.RequestedItem{newItem(t, 1)})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "deadline")
	})

	t.Run("should require at least one item", func(t *testing.T) {
		_, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(), nil)

		require.ErrorIs(t, err, tender.ErrItemsAreRequired)
	})

	t.Run("should reject duplicated items", func(t *testing.T) {
		item := newItem(t, 1)

		_, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
			[]tender.RequestedItem{item, item})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject items built without constructor", func(t *testing.T) {
		_, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
			[]tender.RequestedItem{{}})

		require.ErrorIs(t, err, tender.ErrRequestedItemIsNotConstructed)
	})

	t.Run("should require call reference", func(t *testing.T) {
		_, err := tender.NewTender(kernel.NewUUID(), "   ", "", startsAt, deadline, kernel.NewUUID(),
			[]tender.RequestedItem{newItem(t, 1)})

		require.ErrorIs(t, err, tender.ErrCallReferenceIsRequired)
	})
}

func TestTender_ItemsAreImmutable(t *testing.T) {
	tn, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
		[]tender.RequestedItem{newItem(t, 10)})
	require.NoError(t, err)

	items := tn.Items()
	items[0] = newItem(t, 99)

	assert.True(t, decimal.NewFromInt(10).Equal(tn.Items()[0].Quantity()))
}

func TestTender_ApplyDerivedStatus(t *testing.T) {
	tn, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
		[]tender.RequestedItem{newItem(t, 10)})
	require.NoError(t, err)

	changed, err := tn.ApplyDerivedStatus(tender.PartialAward)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, tender.PartialAward, tn.Status())

	changed, err = tn.ApplyDerivedStatus(tender.PartialAward)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = tn.ApplyDerivedStatus(tender.Unknown)
	require.Error(t, err)
	assert.Equal(t, tender.PartialAward, tn.Status())
}

func TestTender_AcceptsQuotations(t *testing.T) {
	tn, err := tender.NewTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
		[]tender.RequestedItem{newItem(t, 10)})
	require.NoError(t, err)
	require.NoError(t, tn.AcceptsQuotations())

	for _, status := range []tender.Status{tender.PartialAward, tender.NotAwarded, tender.TotalAward} {
		_, err = tn.ApplyDerivedStatus(status)
		require.NoError(t, err)

		err = tn.AcceptsQuotations()
		require.ErrorIs(t, err, errs.ErrInvalidTransition, status.String())
		assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	}
}

func TestRestoreTender(t *testing.T) {
	tn, err := tender.RestoreTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
		[]tender.RequestedItem{newItem(t, 10)}, tender.NotAwarded)

	require.NoError(t, err)
	assert.Equal(t, tender.NotAwarded, tn.Status())

	_, err = tender.RestoreTender(kernel.NewUUID(), "LIC", "", startsAt, deadline, kernel.NewUUID(),
		[]tender.RequestedItem{newItem(t, 10)}, tender.Status(42))
	require.Error(t, err)
}

func TestTender_Validate(t *testing.T) {
	var nilTender *tender.Tender
	assert.Equal(t, tender.ErrTenderIsNotConstructed, nilTender.Validate())
	assert.Equal(t, tender.ErrTenderIsNotConstructed, (&tender.Tender{}).Validate())
}
