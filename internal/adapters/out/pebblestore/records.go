package pebblestore

import (
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"

	"github.com/shopspring/decimal"
)

type tenderRecord struct {
	ID                kernel.UUID           `json:"id"`
	CallReference     string                `json:"call_reference"`
	InternalReference string                `json:"internal_reference"`
	StartsAt          time.Time             `json:"starts_at"`
	Deadline          time.Time             `json:"deadline"`
	RequesterID       kernel.UUID           `json:"requester_id"`
	Status            int                   `json:"status"`
	Seq               uint64                `json:"seq"`
	Items             []requestedItemRecord `json:"items"`
}

type requestedItemRecord struct {
	ID          kernel.UUID     `json:"id"`
	ProductID   kernel.UUID     `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

func tenderToRecord(t *tender.Tender, seq uint64) tenderRecord {
	rec := tenderRecord{
		ID:                t.ID(),
		CallReference:     t.CallReference(),
		InternalReference: t.InternalReference(),
		StartsAt:          t.StartsAt().UTC(),
		Deadline:          t.Deadline().UTC(),
		RequesterID:       t.RequesterID(),
		Status:            int(t.Status()),
		Seq:               seq,
	}
	for _, item := range t.Items() {
		rec.Items = append(rec.Items, requestedItemRecord{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
		})
	}
	return rec
}

func (rec tenderRecord) toDomain() (*tender.Tender, error) {
	items := make([]tender.RequestedItem, 0, len(rec.Items))
	for _, itemRec := range rec.Items {
		item, err := tender.NewRequestedItem(itemRec.ID, itemRec.ProductID, itemRec.Description, itemRec.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return tender.RestoreTender(rec.ID, rec.CallReference, rec.InternalReference,
		rec.StartsAt, rec.Deadline, rec.RequesterID, items, tender.Status(rec.Status))
}

type quotationRecord struct {
	ID           kernel.UUID  `json:"id"`
	Identifier   string       `json:"identifier"`
	TenderID     kernel.UUID  `json:"tender_id"`
	RequesterID  kernel.UUID  `json:"requester_id"`
	Currency     string       `json:"currency"`
	PaymentTerms string       `json:"payment_terms"`
	State        int          `json:"state"`
	Version      int64        `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	Seq          uint64       `json:"seq"`
	Lines        []lineRecord `json:"lines"`
}

type lineRecord struct {
	ID                  kernel.UUID     `json:"id"`
	ProductID           *kernel.UUID    `json:"product_id,omitempty"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceWithoutTax decimal.Decimal `json:"unit_price_without_tax"`
	TaxPercentage       decimal.Decimal `json:"tax_percentage"`
	DeliveryDays        int             `json:"delivery_days"`
	Provisional         bool            `json:"provisional"`
	AwardState          int             `json:"award_state"`
	AwardedQuantity     decimal.Decimal `json:"awarded_quantity"`
}

func quotationToRecord(q *quotation.Quotation, seq uint64) quotationRecord {
	rec := quotationRecord{
		ID:           q.ID(),
		Identifier:   q.Identifier(),
		TenderID:     q.TenderID(),
		RequesterID:  q.RequesterID(),
		Currency:     q.Currency(),
		PaymentTerms: q.PaymentTerms(),
		State:        int(q.State()),
		Version:      q.Version(),
		CreatedAt:    q.CreatedAt().UTC(),
		Seq:          seq,
	}
	for _, l := range q.Lines() {
		rec.Lines = append(rec.Lines, lineRecord{
			ID:                  l.ID(),
			ProductID:           l.ProductID(),
			Description:         l.Description(),
			Quantity:            l.Quantity(),
			UnitPriceWithoutTax: l.UnitPriceWithoutTax(),
			TaxPercentage:       l.TaxPercentage(),
			DeliveryDays:        l.DeliveryDays(),
			Provisional:         l.IsProvisional(),
			AwardState:          int(l.AwardState()),
			AwardedQuantity:     l.AwardedQuantity(),
		})
	}
	return rec
}

func (rec quotationRecord) toDomain() (*quotation.Quotation, error) {
	lines := make([]*quotation.Line, 0, len(rec.Lines))
	for _, lineRec := range rec.Lines {
		line, err := quotation.RestoreLine(
			quotation.LineSpec{
				ID:                  lineRec.ID,
				ProductID:           lineRec.ProductID,
				Description:         lineRec.Description,
				Quantity:            lineRec.Quantity,
				UnitPriceWithoutTax: lineRec.UnitPriceWithoutTax,
				TaxPercentage:       lineRec.TaxPercentage,
				DeliveryDays:        lineRec.DeliveryDays,
			},
			rec.Currency,
			lineRec.Provisional,
			quotation.AwardState(lineRec.AwardState),
			lineRec.AwardedQuantity,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return quotation.RestoreQuotation(rec.ID, rec.Identifier, rec.TenderID, rec.RequesterID,
		rec.Currency, rec.PaymentTerms, lines, quotation.State(rec.State), rec.Version, rec.CreatedAt)
}

type awardRecord struct {
	ID               kernel.UUID            `json:"id"`
	QuotationID      kernel.UUID            `json:"quotation_id"`
	TenderID         kernel.UUID            `json:"tender_id"`
	Status           int                    `json:"status"`
	AdjudicationDate time.Time              `json:"adjudication_date"`
	AwardedItems     []awardedItemRecord    `json:"awarded_items"`
	NonAwardedItems  []nonAwardedItemRecord `json:"non_awarded_items"`
}

type awardedItemRecord struct {
	LineID              kernel.UUID     `json:"line_id"`
	ProductID           *kernel.UUID    `json:"product_id,omitempty"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	LineQuantity        decimal.Decimal `json:"line_quantity"`
	UnitPriceWithoutTax decimal.Decimal `json:"unit_price_without_tax"`
	TaxPercentage       decimal.Decimal `json:"tax_percentage"`
}

type nonAwardedItemRecord struct {
	LineID          kernel.UUID     `json:"line_id"`
	ProductID       *kernel.UUID    `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	CompetitorName  string          `json:"competitor_name"`
	CompetitorTaxID string          `json:"competitor_tax_id"`
	CompetitorPrice decimal.Decimal `json:"competitor_price"`
}

func awardToRecord(a *award.Award) awardRecord {
	rec := awardRecord{
		ID:               a.ID(),
		QuotationID:      a.QuotationID(),
		TenderID:         a.TenderID(),
		Status:           int(a.Status()),
		AdjudicationDate: a.AdjudicationDate().UTC(),
	}
	for _, item := range a.AwardedItems() {
		rec.AwardedItems = append(rec.AwardedItems, awardedItemRecord{
			LineID:              item.LineID(),
			ProductID:           item.ProductID(),
			Description:         item.Description(),
			Quantity:            item.Quantity(),
			LineQuantity:        item.LineQuantity(),
			UnitPriceWithoutTax: item.UnitPriceWithoutTax(),
			TaxPercentage:       item.TaxPercentage(),
		})
	}
	for _, item := range a.NonAwardedItems() {
		rec.NonAwardedItems = append(rec.NonAwardedItems, nonAwardedItemRecord{
			LineID:          item.LineID(),
			ProductID:       item.ProductID(),
			Description:     item.Description(),
			CompetitorName:  item.CompetitorName(),
			CompetitorTaxID: item.CompetitorTaxID(),
			CompetitorPrice: item.CompetitorPrice(),
		})
	}
	return rec
}

func (rec awardRecord) toDomain() (*award.Award, error) {
	awarded := make([]award.AwardedItem, 0, len(rec.AwardedItems))
	for _, itemRec := range rec.AwardedItems {
		item, err := award.NewAwardedItem(itemRec.LineID, itemRec.ProductID, itemRec.Description,
			itemRec.Quantity, itemRec.LineQuantity, itemRec.UnitPriceWithoutTax, itemRec.TaxPercentage)
		if err != nil {
			return nil, err
		}
		awarded = append(awarded, item)
	}

	nonAwarded := make([]award.NonAwardedItem, 0, len(rec.NonAwardedItems))
	for _, itemRec := range rec.NonAwardedItems {
		item, err := award.NewNonAwardedItem(itemRec.LineID, itemRec.ProductID, itemRec.Description,
			itemRec.CompetitorName, itemRec.CompetitorTaxID, itemRec.CompetitorPrice)
		if err != nil {
			return nil, err
		}
		nonAwarded = append(nonAwarded, item)
	}

	return award.NewAward(rec.ID, rec.QuotationID, rec.TenderID, award.Status(rec.Status),
		awarded, nonAwarded, rec.AdjudicationDate)
}

type outboxRecord struct {
	ID          kernel.UUID `json:"id"`
	EventType   string      `json:"event_type"`
	Key         string      `json:"key"`
	Payload     []byte      `json:"payload"`
	OccurredAt  time.Time   `json:"occurred_at"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	Seq         uint64      `json:"seq"`
}

func (rec outboxRecord) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          rec.ID,
		EventType:   rec.EventType,
		Key:         rec.Key,
		Payload:     rec.Payload,
		OccurredAt:  rec.OccurredAt,
		PublishedAt: rec.PublishedAt,
	}
}
