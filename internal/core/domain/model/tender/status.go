package tender

import (
	"fmt"

	"tendering/internal/pkg/errs"
)

// Status is the aggregate award status of a tender.
//
//	Pending ──┬──> PartialAward
//	          ├──> NotAwarded
//	          └──> TotalAward
//
// Any status may be recomputed into any other one when the underlying line
// resolutions change, so Status has no transition methods of its own.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means no quotation line has been resolved yet.
	Pending

	// PartialAward means at least one line was awarded (fully or partially)
	// but not every line was awarded in full.
	PartialAward

	// NotAwarded means every resolved line was lost to a competitor.
	NotAwarded

	// TotalAward means every line was awarded in full.
	TotalAward
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "Unknown",
		Pending:      "Pending",
		PartialAward: "PartialAward",
		NotAwarded:   "NotAwarded",
		TotalAward:   "TotalAward",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:      "Pending",
		PartialAward: "PartialAward",
		NotAwarded:   "NotAwarded",
		TotalAward:   "TotalAward",
	}
}

// Validate returns an error for Unknown and any value outside the enum.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus converts a persisted status name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}
