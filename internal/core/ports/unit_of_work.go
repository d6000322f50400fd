package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every repository it hands
// out writes through the transaction started by Begin, so a quotation, its
// award, its tender status and its outbox messages commit together or not at
// all.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	TenderRepository() TenderRepository
	QuotationRepository() QuotationRepository
	AwardRepository() AwardRepository
	OutboxRepository() OutboxRepository
}
