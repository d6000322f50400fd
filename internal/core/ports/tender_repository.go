// Package ports defines the contracts between the tendering core and its
// outer adapters: repositories, the unit of work, the document renderer and
// the message publisher.
package ports

import (
	"context"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
)

// TenderRepository defines the persistence contract for tender aggregates.
type TenderRepository interface {
	// Add persists a new tender with its requested items.
	Add(ctx context.Context, aggregate *tender.Tender) error

	// Update persists the derived status of an existing tender. Requested
	// items are immutable and are never rewritten.
	Update(ctx context.Context, aggregate *tender.Tender) error

	// Get retrieves a tender by id. Inside a transaction the row is locked
	// until commit or rollback. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error)

	// ListIDs returns the ids of all tenders, oldest first.
	ListIDs(ctx context.Context) ([]kernel.UUID, error)
}
