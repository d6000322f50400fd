// Package commands contains the workflow operations that modify system state.
// Every command is handled as one transaction: validate, begin a unit of work,
// load the aggregates, mutate them through the domain model, persist, commit.
package commands

import (
	"context"

	"tendering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TenderRepoFactory interface {
		TenderRepository() ports.TenderRepository
	}

	QuotationRepoFactory interface {
		QuotationRepository() ports.QuotationRepository
	}

	AwardRepoFactory interface {
		AwardRepository() ports.AwardRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// TenderUoW is used by commands that only touch tenders.
	TenderUoW interface {
		TxManager
		TenderRepoFactory
		OutboxRepoFactory
	}

	TenderUoWFactory interface {
		Create() TenderUoW
	}

	// QuotationUoW is used by the quotation lifecycle commands, which change
	// a quotation and possibly the status of its tender but never create awards.
	QuotationUoW interface {
		TxManager
		TenderRepoFactory
		QuotationRepoFactory
		OutboxRepoFactory
	}

	QuotationUoWFactory interface {
		Create() QuotationUoW
	}

	// UoW spans every aggregate. It is used by line resolution, which writes
	// the quotation, the award, the tender status and the outbox together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   q, err := uow.QuotationRepository().Get(ctx, quotationID)
	//   // ... resolve, aggregate, derive
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		TenderRepoFactory
		QuotationRepoFactory
		AwardRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Func adapters let a single ports.UnitOfWorkFactory serve every narrower
// factory interface above.
type FuncTenderUoWFactory func() TenderUoW

func (f FuncTenderUoWFactory) Create() TenderUoW {
	return f()
}

type FuncQuotationUoWFactory func() QuotationUoW

func (f FuncQuotationUoWFactory) Create() QuotationUoW {
	return f()
}

type FuncUoWFactory func() UoW

func (f FuncUoWFactory) Create() UoW {
	return f()
}
