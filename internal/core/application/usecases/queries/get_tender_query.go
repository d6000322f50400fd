package queries

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrGetTenderQueryIsNotConstructed = errors.New(
	"GetTenderQuery must be created via NewGetTenderQuery constructor",
)

type GetTenderQuery struct {
	tenderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTenderQuery(tenderID kernel.UUID) (GetTenderQuery, error) {
	if err := tenderID.Validate(); err != nil {
		return GetTenderQuery{}, err
	}
	return GetTenderQuery{tenderID: tenderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTenderQuery) Validate() error {
	return q.guard.Validate(ErrGetTenderQueryIsNotConstructed)
}

func (q GetTenderQuery) TenderID() kernel.UUID {
	return q.tenderID
}
