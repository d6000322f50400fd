package quotation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrQuotationIsNotConstructed = errors.New("Quotation must be created via NewQuotation constructor")

	ErrIdentifierIsRequired = errs.NewValueIsRequiredError("identifier")
	ErrLinesAreRequired     = errs.NewValueIsRequiredError("lines")
)

// Quotation is the aggregate root of a priced response to a tender.
//
// Quotation follows these invariants:
//   - Belongs to exactly one tender and copies its requester
//   - Line content changes only while Open
//   - Line award states change only while Finalized
//   - Finalized is terminal
//   - version grows by one with each successful persistence
type Quotation struct {
	id           kernel.UUID
	identifier   string
	tenderID     kernel.UUID
	requesterID  kernel.UUID
	currency     string
	paymentTerms string
	lines        []*Line
	state        State
	version      int64
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewQuotation creates an Open quotation for a tender. Each requested item of
// the tender seeds one provisional line priced at zero with no tax; the
// placeholder stays flagged until the price or tax of the line is edited.
//
// NewQuotation does not check whether the tender already has an open
// quotation; that rule needs the repository and is enforced by the caller.
func NewQuotation(
	id kernel.UUID,
	t *tender.Tender,
	identifier string,
	currency string,
	paymentTerms string,
	createdAt time.Time,
) (*Quotation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	q := &Quotation{
		tenderID:     t.ID(),
		requesterID:  t.RequesterID(),
		paymentTerms: strings.TrimSpace(paymentTerms),
		state:        Open,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setID(id),
		q.setIdentifier(identifier),
		q.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	for _, item := range t.Items() {
		productID := item.ProductID()
		line, err := newLine(LineSpec{
			ID:                  kernel.NewUUID(),
			ProductID:           &productID,
			Description:         item.Description(),
			Quantity:            item.Quantity(),
			UnitPriceWithoutTax: decimal.Zero,
			TaxPercentage:       decimal.Zero,
		}, q.currency, true)
		if err != nil {
			return nil, fmt.Errorf("seed line from requested item %s: %w", item.ID(), err)
		}
		q.lines = append(q.lines, line)
	}

	return q, nil
}

// RestoreQuotation reconstructs a Quotation from persistent storage.
func RestoreQuotation(
	id kernel.UUID,
	identifier string,
	tenderID kernel.UUID,
	requesterID kernel.UUID,
	currency string,
	paymentTerms string,
	lines []*Line,
	state State,
	version int64,
	createdAt time.Time,
) (*Quotation, error) {
	q := &Quotation{
		paymentTerms: paymentTerms,
		version:      version,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	var stateErr error
	if stateErr = state.Validate(); stateErr == nil {
		q.state = state
	}

	if err := errors.Join(
		q.setID(id),
		q.setIdentifier(identifier),
		tenderID.Validate(),
		requesterID.Validate(),
		q.setCurrency(currency),
		q.setLines(lines),
		stateErr,
	); err != nil {
		return nil, err
	}
	q.tenderID = tenderID
	q.requesterID = requesterID

	return q, nil
}

func (q *Quotation) Validate() error {
	if q == nil {
		return ErrQuotationIsNotConstructed
	}
	return q.guard.Validate(ErrQuotationIsNotConstructed)
}

func (q *Quotation) ID() kernel.UUID          { return q.id }
func (q *Quotation) Identifier() string       { return q.identifier }
func (q *Quotation) TenderID() kernel.UUID    { return q.tenderID }
func (q *Quotation) RequesterID() kernel.UUID { return q.requesterID }
func (q *Quotation) Currency() string         { return q.currency }
func (q *Quotation) PaymentTerms() string     { return q.paymentTerms }
func (q *Quotation) State() State             { return q.state }
func (q *Quotation) Version() int64           { return q.version }
func (q *Quotation) CreatedAt() time.Time     { return q.createdAt }

func (q *Quotation) IsOpen() bool {
	return q.state == Open
}

// Lines returns the lines in order. The slice is a copy; the lines are not.
func (q *Quotation) Lines() []*Line {
	lines := make([]*Line, len(q.lines))
	copy(lines, q.lines)
	return lines
}

func (q *Quotation) Line(lineID kernel.UUID) (*Line, error) {
	_, line, err := q.findLine(lineID)
	return line, err
}

// AwardStates returns the award state of each line, in line order.
func (q *Quotation) AwardStates() []AwardState {
	states := make([]AwardState, 0, len(q.lines))
	for _, l := range q.lines {
		states = append(states, l.awardState)
	}
	return states
}

func (q *Quotation) SubtotalWithoutTax() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lines {
		total = total.Add(l.TotalWithoutTax())
	}
	return total
}

func (q *Quotation) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lines {
		total = total.Add(l.TaxTotal())
	}
	return total
}

func (q *Quotation) TotalWithTax() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lines {
		total = total.Add(l.TotalWithTax())
	}
	return total
}

// AddLine appends a new line. Fails with errs.ErrQuotationLocked once finalized.
func (q *Quotation) AddLine(spec LineSpec) (*Line, error) {
	if err := q.ensureEditable("add line"); err != nil {
		return nil, err
	}
	if _, _, err := q.findLine(spec.ID); err == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("line id", fmt.Errorf("line %s already exists", spec.ID))
	}

	line, err := newLine(spec, q.currency, false)
	if err != nil {
		return nil, err
	}
	q.lines = append(q.lines, line)
	return line, nil
}

// UpdateLine applies patch to a line. Price or tax changes recompute the price
// with tax from the base values and clear the provisional flag.
func (q *Quotation) UpdateLine(lineID kernel.UUID, patch LinePatch) (*Line, error) {
	if err := q.ensureEditable("update line"); err != nil {
		return nil, err
	}
	_, line, err := q.findLine(lineID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("line patch")
	}
	if err := line.apply(patch); err != nil {
		return nil, err
	}
	return line, nil
}

func (q *Quotation) RemoveLine(lineID kernel.UUID) error {
	if err := q.ensureEditable("remove line"); err != nil {
		return err
	}
	idx, _, err := q.findLine(lineID)
	if err != nil {
		return err
	}
	q.lines = append(q.lines[:idx], q.lines[idx+1:]...)
	return nil
}

// Finalize locks the pricing. It requires at least one line and cannot be undone.
func (q *Quotation) Finalize() error {
	next, err := q.state.Finalize()
	if err != nil {
		return err
	}
	if len(q.lines) == 0 {
		return ErrLinesAreRequired
	}
	q.state = next
	return nil
}

// ResolveLine applies decision to a line of a finalized quotation and returns
// the payload for the award aggregator. On error the line is left untouched.
func (q *Quotation) ResolveLine(lineID kernel.UUID, decision Decision) (Resolution, error) {
	if q.state != Finalized {
		return Resolution{}, errs.NewInvalidTransitionError("quotation line", q.state.String()+" quotation", actionOf(decision))
	}
	_, line, err := q.findLine(lineID)
	if err != nil {
		return Resolution{}, err
	}
	return line.resolve(decision)
}

// IncrementVersion is called by repositories after a successful write.
func (q *Quotation) IncrementVersion() {
	q.version++
}

func (q *Quotation) ensureEditable(action string) error {
	if q.state != Open {
		return errs.NewInvalidTransitionErrorWithCause("quotation", q.state.String(), action, errs.ErrQuotationLocked)
	}
	return nil
}

func (q *Quotation) findLine(lineID kernel.UUID) (int, *Line, error) {
	for i, l := range q.lines {
		if l.id.IsEqual(lineID) {
			return i, l, nil
		}
	}
	return -1, nil, errs.NewObjectNotFoundError("lineID", lineID)
}

func (q *Quotation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *Quotation) setIdentifier(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrIdentifierIsRequired
	}
	q.identifier = identifier
	return nil
}

func (q *Quotation) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := kernel.ValidateCurrency(currency); err != nil {
		return err
	}
	q.currency = currency
	return nil
}

func (q *Quotation) setLines(lines []*Line) error {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, ok := seen[l.id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("line %s is listed twice", l.id))
		}
		seen[l.id] = struct{}{}
	}
	q.lines = append([]*Line(nil), lines...)
	return nil
}
