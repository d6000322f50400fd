package quotation

import (
	"fmt"

	"tendering/internal/pkg/errs"
)

// State is the lifecycle state of a quotation.
//
//	Open ──> Finalized
//
// Finalized is terminal: there is no transition back to Open.
type State int

const (
	UnknownState State = iota
	Open
	Finalized
)

func getStateStrings() map[State]string {
	return map[State]string{
		UnknownState: "Unknown",
		Open:         "Open",
		Finalized:    "Finalized",
	}
}

func (s State) Validate() error {
	if s != Open && s != Finalized {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Finalize transitions Open to Finalized.
func (s State) Finalize() (State, error) {
	if s != Open {
		return UnknownState, errs.NewInvalidTransitionError("quotation", s.String(), "finalize")
	}
	return Finalized, nil
}

func ParseState(s string) (State, error) {
	switch s {
	case "Open":
		return Open, nil
	case "Finalized":
		return Finalized, nil
	default:
		return UnknownState, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid state", s))
	}
}
