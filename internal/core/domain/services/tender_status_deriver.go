package services

import (
	"fmt"

	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/errs"
)

// TenderStatusDeriver is the single place where a tender's status is computed.
//
// Rules, applied to the award states of the lines of the tender's quotation:
//   - no resolved line (including no lines at all) -> Pending
//   - every line Awarded -> TotalAward
//   - at least one line Awarded or PartiallyAwarded -> PartialAward
//   - otherwise every resolved line is NotAwarded -> NotAwarded
//
// Derive is a pure, total function of its input.
type TenderStatusDeriver struct{}

func NewTenderStatusDeriver() TenderStatusDeriver {
	return TenderStatusDeriver{}
}

func (TenderStatusDeriver) Derive(states []quotation.AwardState) tender.Status {
	var resolved, awarded, won int
	for _, s := range states {
		if s.IsResolved() {
			resolved++
		}
		if s == quotation.Awarded {
			awarded++
		}
		if s.IsWon() {
			won++
		}
	}

	switch {
	case resolved == 0:
		return tender.Pending
	case awarded == len(states):
		return tender.TotalAward
	case won > 0:
		return tender.PartialAward
	default:
		return tender.NotAwarded
	}
}

// Refresh derives the status from q and stores it on t. A nil quotation means
// the tender has no quotation yet. It reports whether the status changed.
func (d TenderStatusDeriver) Refresh(t *tender.Tender, q *quotation.Quotation) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	var states []quotation.AwardState
	if q != nil {
		if err := q.Validate(); err != nil {
			return false, err
		}
		if !q.TenderID().IsEqual(t.ID()) {
			return false, errs.NewValueIsInvalidErrorWithCause("quotation",
				fmt.Errorf("quotation %s belongs to tender %s, not %s", q.ID(), q.TenderID(), t.ID()))
		}
		states = q.AwardStates()
	}

	return t.ApplyDerivedStatus(d.Derive(states))
}
