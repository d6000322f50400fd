package commands

import (
	"encoding/json"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"
)

type tenderOpenedEvent struct {
	TenderID      string    `json:"tenderId"`
	CallReference string    `json:"callReference"`
	Deadline      time.Time `json:"deadline"`
	Items         int       `json:"items"`
}

type quotationEvent struct {
	QuotationID string `json:"quotationId"`
	TenderID    string `json:"tenderId"`
	Identifier  string `json:"identifier"`
	State       string `json:"state"`
	Lines       int    `json:"lines"`
	Total       string `json:"totalWithTax"`
	Currency    string `json:"currency"`
}

type awardItemEvent struct {
	LineID          string `json:"lineId"`
	Quantity        string `json:"quantity,omitempty"`
	CompetitorName  string `json:"competitorName,omitempty"`
	CompetitorTaxID string `json:"competitorTaxId,omitempty"`
}

type awardCreatedEvent struct {
	AwardID              string           `json:"awardId"`
	QuotationID          string           `json:"quotationId"`
	TenderID             string           `json:"tenderId"`
	Status               string           `json:"status"`
	AdjudicationDate     time.Time        `json:"adjudicationDate"`
	TotalQuantity        string           `json:"totalQuantity"`
	TotalPriceWithoutTax string           `json:"totalPriceWithoutTax"`
	TotalPriceWithTax    string           `json:"totalPriceWithTax"`
	Awarded              []awardItemEvent `json:"awarded"`
	NonAwarded           []awardItemEvent `json:"nonAwarded"`
}

type tenderStatusChangedEvent struct {
	TenderID string `json:"tenderId"`
	Status   string `json:"status"`
}

func newMessage(eventType string, tenderID kernel.UUID, payload any, occurredAt time.Time) (ports.OutboxMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:         kernel.NewUUID(),
		EventType:  eventType,
		Key:        tenderID.String(),
		Payload:    data,
		OccurredAt: occurredAt,
	}, nil
}

func tenderOpenedMessage(t *tender.Tender, at time.Time) (ports.OutboxMessage, error) {
	return newMessage(ports.EventTenderOpened, t.ID(), tenderOpenedEvent{
		TenderID:      t.ID().String(),
		CallReference: t.CallReference(),
		Deadline:      t.Deadline(),
		Items:         len(t.Items()),
	}, at)
}

func quotationMessage(eventType string, q *quotation.Quotation, at time.Time) (ports.OutboxMessage, error) {
	return newMessage(eventType, q.TenderID(), quotationEvent{
		QuotationID: q.ID().String(),
		TenderID:    q.TenderID().String(),
		Identifier:  q.Identifier(),
		State:       q.State().String(),
		Lines:       len(q.Lines()),
		Total:       q.TotalWithTax().String(),
		Currency:    q.Currency(),
	}, at)
}

func awardCreatedMessage(a *award.Award, at time.Time) (ports.OutboxMessage, error) {
	event := awardCreatedEvent{
		AwardID:              a.ID().String(),
		QuotationID:          a.QuotationID().String(),
		TenderID:             a.TenderID().String(),
		Status:               a.Status().String(),
		AdjudicationDate:     a.AdjudicationDate(),
		TotalQuantity:        a.TotalQuantity().String(),
		TotalPriceWithoutTax: a.TotalPriceWithoutTax().String(),
		TotalPriceWithTax:    a.TotalPriceWithTax().String(),
		Awarded:              []awardItemEvent{},
		NonAwarded:           []awardItemEvent{},
	}
	for _, item := range a.AwardedItems() {
		event.Awarded = append(event.Awarded, awardItemEvent{
			LineID:   item.LineID().String(),
			Quantity: item.Quantity().String(),
		})
	}
	for _, item := range a.NonAwardedItems() {
		event.NonAwarded = append(event.NonAwarded, awardItemEvent{
			LineID:          item.LineID().String(),
			CompetitorName:  item.CompetitorName(),
			CompetitorTaxID: item.CompetitorTaxID(),
		})
	}
	return newMessage(ports.EventAwardCreated, a.TenderID(), event, at)
}

func tenderStatusChangedMessage(t *tender.Tender, at time.Time) (ports.OutboxMessage, error) {
	return newMessage(ports.EventTenderStatusChange, t.ID(), tenderStatusChangedEvent{
		TenderID: t.ID().String(),
		Status:   t.Status().String(),
	}, at)
}
