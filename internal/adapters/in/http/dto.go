package http

import (
	"time"

	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request bodies. Decimals travel as JSON strings.

type RequestedItemRequest struct {
	ProductID   uuid.UUID       `json:"productId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type OpenTenderRequest struct {
	CallReference     string                 `json:"callReference"`
	InternalReference string                 `json:"internalReference"`
	StartsAt          time.Time              `json:"startsAt"`
	Deadline          time.Time              `json:"deadline"`
	RequesterID       uuid.UUID              `json:"requesterId"`
	Items             []RequestedItemRequest `json:"items"`
}

type CreateQuotationRequest struct {
	Identifier   string `json:"identifier"`
	Currency     string `json:"currency"`
	PaymentTerms string `json:"paymentTerms"`
}

type AddLineRequest struct {
	ProductID           *uuid.UUID      `json:"productId"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceWithoutTax decimal.Decimal `json:"unitPriceWithoutTax"`
	TaxPercentage       decimal.Decimal `json:"taxPercentage"`
	DeliveryDays        int             `json:"deliveryDays"`
}

type UpdateLineRequest struct {
	Description         *string          `json:"description"`
	Quantity            *decimal.Decimal `json:"quantity"`
	UnitPriceWithoutTax *decimal.Decimal `json:"unitPriceWithoutTax"`
	TaxPercentage       *decimal.Decimal `json:"taxPercentage"`
	DeliveryDays        *int             `json:"deliveryDays"`
}

type AwardLineRequest struct {
	Quantity         *decimal.Decimal `json:"quantity"`
	AdjudicationDate *time.Time       `json:"adjudicationDate"`
}

type RejectLineRequest struct {
	CompetitorName   string          `json:"competitorName"`
	CompetitorTaxID  string          `json:"competitorTaxId"`
	CompetitorPrice  decimal.Decimal `json:"competitorPrice"`
	AdjudicationDate *time.Time      `json:"adjudicationDate"`
}

// Responses.

type ErrorResponse struct {
	Code      int    `json:"code"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
}

type RequestedItemResponse struct {
	ID          kernel.UUID     `json:"id"`
	ProductID   kernel.UUID     `json:"productId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type TenderResponse struct {
	ID                kernel.UUID             `json:"id"`
	CallReference     string                  `json:"callReference"`
	InternalReference string                  `json:"internalReference"`
	StartsAt          time.Time               `json:"startsAt"`
	Deadline          time.Time               `json:"deadline"`
	RequesterID       kernel.UUID             `json:"requesterId"`
	Status            string                  `json:"status"`
	Items             []RequestedItemResponse `json:"items"`
}

func newTenderResponse(v queries.TenderView) TenderResponse {
	resp := TenderResponse{
		ID:                v.ID,
		CallReference:     v.CallReference,
		InternalReference: v.InternalReference,
		StartsAt:          v.StartsAt,
		Deadline:          v.Deadline,
		RequesterID:       v.RequesterID,
		Status:            v.Status,
		Items:             make([]RequestedItemResponse, 0, len(v.Items)),
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, RequestedItemResponse(item))
	}
	return resp
}

type LineResponse struct {
	ID                  kernel.UUID     `json:"id"`
	ProductID           *kernel.UUID    `json:"productId"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceWithoutTax decimal.Decimal `json:"unitPriceWithoutTax"`
	TaxPercentage       decimal.Decimal `json:"taxPercentage"`
	UnitPriceWithTax    decimal.Decimal `json:"unitPriceWithTax"`
	TotalWithoutTax     decimal.Decimal `json:"totalWithoutTax"`
	TaxTotal            decimal.Decimal `json:"taxTotal"`
	TotalWithTax        decimal.Decimal `json:"totalWithTax"`
	DeliveryDays        int             `json:"deliveryDays"`
	Provisional         bool            `json:"provisional"`
	AwardState          string          `json:"awardState"`
	AwardedQuantity     decimal.Decimal `json:"awardedQuantity"`
}

type TaxRateResponse struct {
	Percentage decimal.Decimal `json:"percentage"`
	Base       decimal.Decimal `json:"base"`
	Tax        decimal.Decimal `json:"tax"`
}

type QuotationResponse struct {
	ID                 kernel.UUID       `json:"id"`
	Identifier         string            `json:"identifier"`
	TenderID           kernel.UUID       `json:"tenderId"`
	RequesterID        kernel.UUID       `json:"requesterId"`
	Currency           string            `json:"currency"`
	PaymentTerms       string            `json:"paymentTerms"`
	State              string            `json:"state"`
	Version            int64             `json:"version"`
	CreatedAt          time.Time         `json:"createdAt"`
	Lines              []LineResponse    `json:"lines"`
	TaxBreakdown       []TaxRateResponse `json:"taxBreakdown"`
	SubtotalWithoutTax decimal.Decimal   `json:"subtotalWithoutTax"`
	TaxTotal           decimal.Decimal   `json:"taxTotal"`
	TotalWithTax       decimal.Decimal   `json:"totalWithTax"`
}

func newQuotationResponse(v queries.QuotationView) QuotationResponse {
	resp := QuotationResponse{
		ID:                 v.ID,
		Identifier:         v.Identifier,
		TenderID:           v.TenderID,
		RequesterID:        v.RequesterID,
		Currency:           v.Currency,
		PaymentTerms:       v.PaymentTerms,
		State:              v.State,
		Version:            v.Version,
		CreatedAt:          v.CreatedAt,
		Lines:              make([]LineResponse, 0, len(v.Lines)),
		TaxBreakdown:       make([]TaxRateResponse, 0, len(v.TaxBreakdown)),
		SubtotalWithoutTax: v.SubtotalWithoutTax,
		TaxTotal:           v.TaxTotal,
		TotalWithTax:       v.TotalWithTax,
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, LineResponse(l))
	}
	for _, r := range v.TaxBreakdown {
		resp.TaxBreakdown = append(resp.TaxBreakdown, TaxRateResponse(r))
	}
	return resp
}

type AwardedItemResponse struct {
	LineID              kernel.UUID     `json:"lineId"`
	ProductID           *kernel.UUID    `json:"productId"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPriceWithoutTax decimal.Decimal `json:"unitPriceWithoutTax"`
	TaxPercentage       decimal.Decimal `json:"taxPercentage"`
	TotalWithoutTax     decimal.Decimal `json:"totalWithoutTax"`
	TotalWithTax        decimal.Decimal `json:"totalWithTax"`
}

type NonAwardedItemResponse struct {
	LineID          kernel.UUID     `json:"lineId"`
	ProductID       *kernel.UUID    `json:"productId"`
	Description     string          `json:"description"`
	CompetitorName  string          `json:"competitorName"`
	CompetitorTaxID string          `json:"competitorTaxId"`
	CompetitorPrice decimal.Decimal `json:"competitorPrice"`
}

type AwardResponse struct {
	ID                   kernel.UUID              `json:"id"`
	QuotationID          kernel.UUID              `json:"quotationId"`
	TenderID             kernel.UUID              `json:"tenderId"`
	Status               string                   `json:"status"`
	AdjudicationDate     time.Time                `json:"adjudicationDate"`
	TotalQuantity        decimal.Decimal          `json:"totalQuantity"`
	TotalPriceWithoutTax decimal.Decimal          `json:"totalPriceWithoutTax"`
	TotalPriceWithTax    decimal.Decimal          `json:"totalPriceWithTax"`
	Awarded              []AwardedItemResponse    `json:"awarded"`
	NonAwarded           []NonAwardedItemResponse `json:"nonAwarded"`
}

func newAwardResponse(v queries.AwardView) AwardResponse {
	resp := AwardResponse{
		ID:                   v.ID,
		QuotationID:          v.QuotationID,
		TenderID:             v.TenderID,
		Status:               v.Status,
		AdjudicationDate:     v.AdjudicationDate,
		TotalQuantity:        v.TotalQuantity,
		TotalPriceWithoutTax: v.TotalPriceWithoutTax,
		TotalPriceWithTax:    v.TotalPriceWithTax,
		Awarded:              make([]AwardedItemResponse, 0, len(v.Awarded)),
		NonAwarded:           make([]NonAwardedItemResponse, 0, len(v.NonAwarded)),
	}
	for _, item := range v.Awarded {
		resp.Awarded = append(resp.Awarded, AwardedItemResponse(item))
	}
	for _, item := range v.NonAwarded {
		resp.NonAwarded = append(resp.NonAwarded, NonAwardedItemResponse(item))
	}
	return resp
}

func newAwardResponses(views []queries.AwardView) []AwardResponse {
	resp := make([]AwardResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newAwardResponse(v))
	}
	return resp
}

type ResolutionResponse struct {
	Line         *LineResponse `json:"line,omitempty"`
	Award        AwardResponse `json:"award"`
	TenderStatus string        `json:"tenderStatus"`
}

type ReconcileResponse struct {
	Changed bool   `json:"changed"`
	Status  string `json:"status"`
}
