package errs

import "errors"

// Kind is the closed error taxonomy returned to callers of the workflow.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidTransition
	KindValidation
	KindDuplicateOpenQuotation
	KindRepository
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:                "Unknown",
		KindNotFound:               "NotFound",
		KindInvalidTransition:      "InvalidTransition",
		KindValidation:             "ValidationError",
		KindDuplicateOpenQuotation: "DuplicateOpenQuotation",
		KindRepository:             "RepositoryError",
	}
}

func getKindMessages() map[Kind]string {
	return map[Kind]string{
		KindUnknown:                "Unexpected error",
		KindNotFound:               "The referenced tender, quotation, line or award does not exist",
		KindInvalidTransition:      "The operation is not allowed in the current state",
		KindValidation:             "The request contains invalid data",
		KindDuplicateOpenQuotation: "The tender already has an open quotation",
		KindRepository:             "Storage is temporarily unavailable, please retry",
	}
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// Message returns the user-facing message for the kind. Every kind has a
// distinct message.
func (k Kind) Message() string {
	if s, ok := getKindMessages()[k]; ok {
		return s
	}
	return getKindMessages()[KindUnknown]
}

// Retryable reports whether a caller may retry the failed command.
func (k Kind) Retryable() bool {
	return k == KindRepository
}

// KindOf classifies err. The order of checks matters: a RepositoryError may
// carry a cause that is itself classifiable, but storage failures win.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrRepository):
		return KindRepository
	case errors.Is(err, ErrDuplicateOpenQuotation):
		return KindDuplicateOpenQuotation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindUnknown
	}
}
