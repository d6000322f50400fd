package ports

import (
	"context"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
)

// QuotationRepository defines the persistence contract for quotation aggregates.
type QuotationRepository interface {
	// Add persists a new quotation with its lines. A second open quotation
	// for the same tender fails with errs.DuplicateOpenQuotationError.
	Add(ctx context.Context, aggregate *quotation.Quotation) error

	// Update replaces the stored quotation and its lines. The write succeeds
	// only when the stored version equals aggregate.Version(); afterwards the
	// aggregate version is incremented. A stale version fails with a
	// RepositoryError wrapping errs.ErrConcurrentModification.
	Update(ctx context.Context, aggregate *quotation.Quotation) error

	// Get retrieves a quotation by id, locking it for the current transaction.
	Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error)

	// GetOpenByTender returns the open quotation of a tender, or
	// errs.ObjectNotFoundError when the tender has none.
	GetOpenByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error)

	// GetLatestByTender returns the most recently created quotation of a
	// tender regardless of its state, or errs.ObjectNotFoundError.
	GetLatestByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error)
}
