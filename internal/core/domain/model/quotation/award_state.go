package quotation

import (
	"fmt"

	"tendering/internal/pkg/errs"
)

// AwardState is the resolution state of a quotation line.
//
//	Pending ──┬──> Awarded
//	          ├──> PartiallyAwarded
//	          └──> NotAwarded
//
// Every resolution leaves Pending exactly once; resolved states are terminal.
type AwardState int

const (
	UnknownAwardState AwardState = iota
	Pending
	Awarded
	PartiallyAwarded
	NotAwarded
)

func getAwardStateStrings() map[AwardState]string {
	return map[AwardState]string{
		UnknownAwardState: "Unknown",
		Pending:           "Pending",
		Awarded:           "Awarded",
		PartiallyAwarded:  "PartiallyAwarded",
		NotAwarded:        "NotAwarded",
	}
}

func (s AwardState) Validate() error {
	if s < Pending || s > NotAwarded {
		return errs.NewValueIsInvalidErrorWithCause("award state is invalid", fmt.Errorf("%d is not a valid award state", s))
	}
	return nil
}

func (s AwardState) String() string {
	if str, ok := getAwardStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsResolved reports whether the line has left Pending.
func (s AwardState) IsResolved() bool {
	return s == Awarded || s == PartiallyAwarded || s == NotAwarded
}

// IsWon reports whether at least part of the line was awarded.
func (s AwardState) IsWon() bool {
	return s == Awarded || s == PartiallyAwarded
}

func ParseAwardState(s string) (AwardState, error) {
	for state, str := range getAwardStateStrings() {
		if state != UnknownAwardState && str == s {
			return state, nil
		}
	}
	return UnknownAwardState, errs.NewValueIsInvalidErrorWithCause("award state is invalid",
		fmt.Errorf("%q is not a valid award state", s))
}
