package queries

import (
	"sort"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"

	"github.com/shopspring/decimal"
)

type RequestedItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	Description string
	Quantity    decimal.Decimal
}

type TenderView struct {
	ID                kernel.UUID
	CallReference     string
	InternalReference string
	StartsAt          time.Time
	Deadline          time.Time
	RequesterID       kernel.UUID
	Status            string
	Items             []RequestedItemView
}

func NewTenderView(t *tender.Tender) TenderView {
	view := TenderView{
		ID:                t.ID(),
		CallReference:     t.CallReference(),
		InternalReference: t.InternalReference(),
		StartsAt:          t.StartsAt(),
		Deadline:          t.Deadline(),
		RequesterID:       t.RequesterID(),
		Status:            t.Status().String(),
		Items:             make([]RequestedItemView, 0, len(t.Items())),
	}
	for _, item := range t.Items() {
		view.Items = append(view.Items, RequestedItemView{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
		})
	}
	return view
}

type LineView struct {
	ID                  kernel.UUID
	ProductID           *kernel.UUID
	Description         string
	Quantity            decimal.Decimal
	UnitPriceWithoutTax decimal.Decimal
	TaxPercentage       decimal.Decimal
	UnitPriceWithTax    decimal.Decimal
	TotalWithoutTax     decimal.Decimal
	TaxTotal            decimal.Decimal
	TotalWithTax        decimal.Decimal
	DeliveryDays        int
	Provisional         bool
	AwardState          string
	AwardedQuantity     decimal.Decimal
}

// TaxRateView is the IVA subtotal of all lines sharing one tax percentage.
type TaxRateView struct {
	Percentage decimal.Decimal
	Base       decimal.Decimal
	Tax        decimal.Decimal
}

type QuotationView struct {
	ID                 kernel.UUID
	Identifier         string
	TenderID           kernel.UUID
	RequesterID        kernel.UUID
	Currency           string
	PaymentTerms       string
	State              string
	Version            int64
	CreatedAt          time.Time
	Lines              []LineView
	TaxBreakdown       []TaxRateView
	SubtotalWithoutTax decimal.Decimal
	TaxTotal           decimal.Decimal
	TotalWithTax       decimal.Decimal
}

func NewQuotationView(q *quotation.Quotation) QuotationView {
	lines := q.Lines()
	view := QuotationView{
		ID:                 q.ID(),
		Identifier:         q.Identifier(),
		TenderID:           q.TenderID(),
		RequesterID:        q.RequesterID(),
		Currency:           q.Currency(),
		PaymentTerms:       q.PaymentTerms(),
		State:              q.State().String(),
		Version:            q.Version(),
		CreatedAt:          q.CreatedAt(),
		Lines:              make([]LineView, 0, len(lines)),
		TaxBreakdown:       TaxBreakdown(lines),
		SubtotalWithoutTax: q.SubtotalWithoutTax(),
		TaxTotal:           q.TaxTotal(),
		TotalWithTax:       q.TotalWithTax(),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, LineView{
			ID:                  l.ID(),
			ProductID:           l.ProductID(),
			Description:         l.Description(),
			Quantity:            l.Quantity(),
			UnitPriceWithoutTax: l.UnitPriceWithoutTax(),
			TaxPercentage:       l.TaxPercentage(),
			UnitPriceWithTax:    l.UnitPriceWithTax(),
			TotalWithoutTax:     l.TotalWithoutTax(),
			TaxTotal:            l.TaxTotal(),
			TotalWithTax:        l.TotalWithTax(),
			DeliveryDays:        l.DeliveryDays(),
			Provisional:         l.IsProvisional(),
			AwardState:          l.AwardState().String(),
			AwardedQuantity:     l.AwardedQuantity(),
		})
	}
	return view
}

// TaxBreakdown groups line totals by tax percentage, lowest rate first.
func TaxBreakdown(lines []*quotation.Line) []TaxRateView {
	rates := make([]TaxRateView, 0)
	index := make(map[string]int)
	for _, l := range lines {
		key := l.TaxPercentage().String()
		i, ok := index[key]
		if !ok {
			i = len(rates)
			index[key] = i
			rates = append(rates, TaxRateView{
				Percentage: l.TaxPercentage(),
				Base:       decimal.Zero,
				Tax:        decimal.Zero,
			})
		}
		rates[i].Base = rates[i].Base.Add(l.TotalWithoutTax())
		rates[i].Tax = rates[i].Tax.Add(l.TaxTotal())
	}
	sort.Slice(rates, func(a, b int) bool {
		return rates[a].Percentage.LessThan(rates[b].Percentage)
	})
	return rates
}

type AwardedItemView struct {
	LineID              kernel.UUID
	ProductID           *kernel.UUID
	Description         string
	Quantity            decimal.Decimal
	UnitPriceWithoutTax decimal.Decimal
	TaxPercentage       decimal.Decimal
	TotalWithoutTax     decimal.Decimal
	TotalWithTax        decimal.Decimal
}

type NonAwardedItemView struct {
	LineID          kernel.UUID
	ProductID       *kernel.UUID
	Description     string
	CompetitorName  string
	CompetitorTaxID string
	CompetitorPrice decimal.Decimal
}

type AwardView struct {
	ID                   kernel.UUID
	QuotationID          kernel.UUID
	TenderID             kernel.UUID
	Status               string
	AdjudicationDate     time.Time
	TotalQuantity        decimal.Decimal
	TotalPriceWithoutTax decimal.Decimal
	TotalPriceWithTax    decimal.Decimal
	Awarded              []AwardedItemView
	NonAwarded           []NonAwardedItemView
}

func NewAwardView(a *award.Award) AwardView {
	view := AwardView{
		ID:                   a.ID(),
		QuotationID:          a.QuotationID(),
		TenderID:             a.TenderID(),
		Status:               a.Status().String(),
		AdjudicationDate:     a.AdjudicationDate(),
		TotalQuantity:        a.TotalQuantity(),
		TotalPriceWithoutTax: a.TotalPriceWithoutTax(),
		TotalPriceWithTax:    a.TotalPriceWithTax(),
		Awarded:              make([]AwardedItemView, 0, len(a.AwardedItems())),
		NonAwarded:           make([]NonAwardedItemView, 0, len(a.NonAwardedItems())),
	}
	for _, item := range a.AwardedItems() {
		view.Awarded = append(view.Awarded, AwardedItemView{
			LineID:              item.LineID(),
			ProductID:           item.ProductID(),
			Description:         item.Description(),
			Quantity:            item.Quantity(),
			UnitPriceWithoutTax: item.UnitPriceWithoutTax(),
			TaxPercentage:       item.TaxPercentage(),
			TotalWithoutTax:     item.TotalWithoutTax(),
			TotalWithTax:        item.TotalWithTax(),
		})
	}
	for _, item := range a.NonAwardedItems() {
		view.NonAwarded = append(view.NonAwarded, NonAwardedItemView{
			LineID:          item.LineID(),
			ProductID:       item.ProductID(),
			Description:     item.Description(),
			CompetitorName:  item.CompetitorName(),
			CompetitorTaxID: item.CompetitorTaxID(),
			CompetitorPrice: item.CompetitorPrice(),
		})
	}
	return view
}
