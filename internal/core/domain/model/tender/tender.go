package tender

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"
)

var (
	// ErrTenderIsNotConstructed is returned when a Tender was not created through
	// NewTender or RestoreTender.
	ErrTenderIsNotConstructed = errors.New("Tender must be created via NewTender constructor")

	ErrCallReferenceIsRequired = errs.NewValueIsRequiredError("call reference")
	ErrItemsAreRequired        = errs.NewValueIsRequiredError("requested items")
)

// Tender is the aggregate root of a call for bids.
//
// Tender follows these invariants:
//   - Must have a valid identifier, a call reference and a requester
//   - The deadline is strictly after the start of the validity window
//   - At least one requested item, with unique item identifiers
//   - Requested items are immutable
//   - The status changes only through ApplyDerivedStatus
type Tender struct {
	id                kernel.UUID
	callReference     string
	internalReference string
	startsAt          time.Time
	deadline          time.Time
	requesterID       kernel.UUID
	items             []RequestedItem
	status            Status
	guard             guard.ConstructorGuard
}

// NewTender opens a tender in Pending status.
//
// Example:
//
//	item, _ := tender.NewRequestedItem(kernel.NewUUID(), productID, "Paracetamol 500mg", decimal.NewFromInt(10))
//	t, err := tender.NewTender(kernel.NewUUID(), "LIC-2024-001", "INT-77",
//	    startsAt, deadline, requesterID, []tender.RequestedItem{item})
func NewTender(
	id kernel.UUID,
	callReference string,
	internalReference string,
	startsAt time.Time,
	deadline time.Time,
	requesterID kernel.UUID,
	items []RequestedItem,
) (*Tender, error) {
	return RestoreTender(id, callReference, internalReference, startsAt, deadline, requesterID, items, Pending)
}

// RestoreTender reconstructs a Tender from persistent storage, including its
// previously derived status.
func RestoreTender(
	id kernel.UUID,
	callReference string,
	internalReference string,
	startsAt time.Time,
	deadline time.Time,
	requesterID kernel.UUID,
	items []RequestedItem,
	status Status,
) (*Tender, error) {
	t := &Tender{
		internalReference: strings.TrimSpace(internalReference),
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setCallReference(callReference),
		t.setValidity(startsAt, deadline),
		t.setRequesterID(requesterID),
		t.setItems(items),
		t.setStatus(status),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tender) Validate() error {
	if t == nil {
		return ErrTenderIsNotConstructed
	}
	return t.guard.Validate(ErrTenderIsNotConstructed)
}

func (t *Tender) ID() kernel.UUID {
	return t.id
}

func (t *Tender) CallReference() string {
	return t.callReference
}

func (t *Tender) InternalReference() string {
	return t.internalReference
}

func (t *Tender) StartsAt() time.Time {
	return t.startsAt
}

func (t *Tender) Deadline() time.Time {
	return t.deadline
}

func (t *Tender) RequesterID() kernel.UUID {
	return t.requesterID
}

// Items returns a copy of the requested items, so callers cannot alter the set.
func (t *Tender) Items() []RequestedItem {
	items := make([]RequestedItem, len(t.items))
	copy(items, t.items)
	return items
}

func (t *Tender) Status() Status {
	return t.status
}

// ApplyDerivedStatus stores a status computed by the tender status deriver.
// It reports whether the status changed.
func (t *Tender) ApplyDerivedStatus(status Status) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if t.status == status {
		return false, nil
	}
	t.status = status
	return true, nil
}

// AcceptsQuotations fails with an InvalidTransition once a line of the
// tender has been resolved. Only a Pending tender can be quoted again.
func (t *Tender) AcceptsQuotations() error {
	if t.status != Pending {
		return errs.NewInvalidTransitionError("tender", t.status.String(), "open a quotation for")
	}
	return nil
}

func (t *Tender) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tender) setCallReference(callReference string) error {
	callReference = strings.TrimSpace(callReference)
	if callReference == "" {
		return ErrCallReferenceIsRequired
	}
	t.callReference = callReference
	return nil
}

func (t *Tender) setValidity(startsAt, deadline time.Time) error {
	if startsAt.IsZero() {
		return errs.NewValueIsRequiredError("startsAt")
	}
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	if !deadline.After(startsAt) {
		return errs.NewValueIsInvalidErrorWithCause("deadline",
			fmt.Errorf("deadline %s is not after start %s",
				deadline.Format(time.RFC3339), startsAt.Format(time.RFC3339)))
	}
	t.startsAt = startsAt
	t.deadline = deadline
	return nil
}

func (t *Tender) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester id", err)
	}
	t.requesterID = requesterID
	return nil
}

func (t *Tender) setItems(items []RequestedItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("requested items",
				fmt.Errorf("item %s is listed twice", item.ID()))
		}
		seen[item.ID()] = struct{}{}
	}

	t.items = make([]RequestedItem, len(items))
	copy(t.items, items)
	return nil
}

func (t *Tender) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
