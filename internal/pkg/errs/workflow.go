package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrDuplicateOpenQuotation = errors.New("duplicate open quotation")
	ErrRepository             = errors.New("repository error")

	// ErrQuotationLocked is the InvalidTransition raised when a finalized
	// quotation is edited.
	ErrQuotationLocked = fmt.Errorf("%w: quotation is finalized", ErrInvalidTransition)

	// ErrEmptyAward is the validation failure for an award without items.
	ErrEmptyAward = fmt.Errorf("%w: award has neither awarded nor non-awarded items", ErrValueIsInvalid)

	// ErrConcurrentModification is the repository failure for a stale aggregate version.
	ErrConcurrentModification = errors.New("aggregate was modified concurrently")
)

// InvalidTransitionError reports an action that the current state of an
// entity forbids, e.g. awarding a line that is already resolved.
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
	Cause  error
}

func NewInvalidTransitionError(entity, from, action string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from,
		Action: action,
	}
}

func NewInvalidTransitionErrorWithCause(entity, from, action string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from,
		Action: action,
		Cause:  cause,
	}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s %s in %s state", ErrInvalidTransition, e.Action, e.Entity, e.From)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidTransition, e.Cause}
	}
	return []error{ErrInvalidTransition}
}

// DuplicateOpenQuotationError reports a second open quotation for a tender.
type DuplicateOpenQuotationError struct {
	TenderID    string
	QuotationID string
}

func NewDuplicateOpenQuotationError(tenderID, quotationID string) *DuplicateOpenQuotationError {
	return &DuplicateOpenQuotationError{
		TenderID:    tenderID,
		QuotationID: quotationID,
	}
}

func (e *DuplicateOpenQuotationError) Error() string {
	if e.QuotationID == "" {
		return fmt.Sprintf("%s: tender %s already has an open quotation", ErrDuplicateOpenQuotation, e.TenderID)
	}
	return fmt.Sprintf("%s: tender %s already has open quotation %s",
		ErrDuplicateOpenQuotation, e.TenderID, e.QuotationID)
}

func (e *DuplicateOpenQuotationError) Unwrap() error {
	return ErrDuplicateOpenQuotation
}

// RepositoryError wraps a failure of the storage collaborator. Both the
// ErrRepository sentinel and the original cause stay reachable through errors.Is.
type RepositoryError struct {
	Operation string
	Cause     error
}

func NewRepositoryError(operation string, cause error) *RepositoryError {
	return &RepositoryError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *RepositoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrRepository, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrRepository, e.Operation)
}

func (e *RepositoryError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRepository, e.Cause}
	}
	return []error{ErrRepository}
}

// WrapRepository returns err unchanged when it is nil, already a repository
// error, or a not-found error; otherwise it wraps err in a RepositoryError.
func WrapRepository(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRepository) || errors.Is(err, ErrObjectNotFound) {
		return err
	}
	return NewRepositoryError(operation, err)
}
