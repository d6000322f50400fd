// Package pgutil holds the helpers shared by the GORM repositories.
package pgutil

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AggregateTracker is implemented by the unit of work. Repositories report
// every aggregate they write.
type AggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// InTransaction reports whether db is bound to an open transaction.
func InTransaction(db *gorm.DB) bool {
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Outside a transaction it leaves the query unchanged.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if InTransaction(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// IsUniqueViolation requires the connection to be opened with
// gorm.Config{TranslateError: true}.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Wrap classifies a driver error as a repository failure. Domain errors and
// nil pass through unchanged.
func Wrap(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(operation, "record", err)
	}
	return errs.WrapRepository(operation, err)
}

// OptionalID maps a nullable column onto an optional domain id.
func OptionalID(raw *uuid.UUID) *kernel.UUID {
	if raw == nil {
		return nil
	}
	id := kernel.UUIDFromGoogle(*raw)
	return &id
}

// OptionalRaw is the inverse of OptionalID.
func OptionalRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
