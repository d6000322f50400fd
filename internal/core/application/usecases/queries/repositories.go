// Package queries contains read operations for retrieving system state.
// Queries never mutate aggregates and return read models built from them.
package queries

import (
	"tendering/internal/core/ports"
)

type (
	// Reader hands out repositories for reads outside of a transaction, so
	// loads do not take row locks.
	Reader interface {
		TenderRepository() ports.TenderRepository
		QuotationRepository() ports.QuotationRepository
		AwardRepository() ports.AwardRepository
	}

	ReaderFactory interface {
		Create() Reader
	}
)

// FuncReaderFactory adapts a function to ReaderFactory.
type FuncReaderFactory func() Reader

func (f FuncReaderFactory) Create() Reader {
	return f()
}

// NewUnitOfWorkReaderFactory reads through units of work that are never
// begun, so every read runs outside a transaction.
func NewUnitOfWorkReaderFactory(factory ports.UnitOfWorkFactory) FuncReaderFactory {
	return func() Reader {
		return factory.Create()
	}
}
