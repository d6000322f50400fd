package pgutil_test

import (
	"errors"
	"fmt"
	"testing"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestOptionalID(t *testing.T) {
	assert.Nil(t, pgutil.OptionalID(nil))
	assert.Nil(t, pgutil.OptionalRaw(nil))

	id := kernel.NewUUID()
	raw := pgutil.OptionalRaw(&id)
	back := pgutil.OptionalID(raw)

	if assert.NotNil(t, back) {
		assert.True(t, id.IsEqual(*back))
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, pgutil.Wrap("get tender", nil))
	})

	t.Run("missing record is not found", func(t *testing.T) {
		err := pgutil.Wrap("get tender", gorm.ErrRecordNotFound)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("driver failure is a repository error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pgutil.Wrap("get tender", cause)

		assert.ErrorIs(t, err, errs.ErrRepository)
		assert.ErrorIs(t, err, cause)
		assert.True(t, errs.KindOf(err).Retryable())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgutil.IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, pgutil.IsUniqueViolation(errors.New("syntax error")))
}
