package award

import (
	"fmt"

	"tendering/internal/pkg/errs"
)

// Status classifies an award as covering its lines in full or not.
type Status int

const (
	Unknown Status = iota
	// Total means every awarded item covers its whole line and nothing was lost.
	Total
	// Partial means at least one item was partially awarded or rejected.
	Partial
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Total:   "Total",
		Partial: "Partial",
	}
}

func (s Status) Validate() error {
	if s != Total && s != Partial {
		return errs.NewValueIsInvalidErrorWithCause("award status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "Total":
		return Total, nil
	case "Partial":
		return Partial, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("award status is invalid",
			fmt.Errorf("%q is not a valid status", s))
	}
}
