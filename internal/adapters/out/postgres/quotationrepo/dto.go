// Package quotationrepo persists quotation aggregates and their lines.
package quotationrepo

import (
	"time"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuotationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RequesterID  uuid.UUID `gorm:"type:uuid;not null"`
	Identifier   string    `gorm:"type:varchar(255);not null"`
	Currency     string    `gorm:"type:char(3);not null"`
	PaymentTerms string    `gorm:"type:text;not null"`
	State        int       `gorm:"type:smallint;not null"`
	Version      int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	Seq          int64     `gorm:"->;autoIncrement"`
	Lines        []LineDTO `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
}

func (QuotationDTO) TableName() string {
	return "quotations"
}

type LineDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuotationID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position            int             `gorm:"not null"`
	ProductID           *uuid.UUID      `gorm:"type:uuid"`
	Description         string          `gorm:"type:text;not null"`
	Quantity            decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	UnitPriceWithoutTax decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	TaxPercentage       decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	DeliveryDays        int             `gorm:"not null"`
	Provisional         bool            `gorm:"not null"`
	AwardState          int             `gorm:"type:smallint;not null"`
	AwardedQuantity     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
}

func (LineDTO) TableName() string {
	return "quotation_lines"
}

func fromDomain(q *quotation.Quotation) QuotationDTO {
	quotationID := q.ID().Bytes()
	return QuotationDTO{
		ID:           quotationID,
		TenderID:     q.TenderID().Bytes(),
		RequesterID:  q.RequesterID().Bytes(),
		Identifier:   q.Identifier(),
		Currency:     q.Currency(),
		PaymentTerms: q.PaymentTerms(),
		State:        int(q.State()),
		Version:      q.Version(),
		CreatedAt:    q.CreatedAt().UTC(),
		Lines:        linesFromDomain(quotationID, q.Lines()),
	}
}

func linesFromDomain(quotationID uuid.UUID, lines []*quotation.Line) []LineDTO {
	dtos := make([]LineDTO, 0, len(lines))
	for i, l := range lines {
		dtos = append(dtos, LineDTO{
			ID:                  l.ID().Bytes(),
			QuotationID:         quotationID,
			Position:            i,
			ProductID:           pgutil.OptionalRaw(l.ProductID()),
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
	return dtos
}

func toDomain(dto QuotationDTO) (*quotation.Quotation, error) {
	lines := make([]*quotation.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, err := quotation.RestoreLine(
			quotation.LineSpec{
				ID:                  kernel.UUIDFromGoogle(lineDTO.ID),
				ProductID:           pgutil.OptionalID(lineDTO.ProductID),
				Description:         lineDTO.Description,
				Quantity:            lineDTO.Quantity,
				UnitPriceWithoutTax: lineDTO.UnitPriceWithoutTax,
				TaxPercentage:       lineDTO.TaxPercentage,
				DeliveryDays:        lineDTO.DeliveryDays,
			},
			dto.Currency,
			lineDTO.Provisional,
			quotation.AwardState(lineDTO.AwardState),
			lineDTO.AwardedQuantity,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return quotation.RestoreQuotation(
		kernel.UUIDFromGoogle(dto.ID),
		dto.Identifier,
		kernel.UUIDFromGoogle(dto.TenderID),
		kernel.UUIDFromGoogle(dto.RequesterID),
		dto.Currency,
		dto.PaymentTerms,
		lines,
		quotation.State(dto.State),
		dto.Version,
		dto.CreatedAt.UTC(),
	)
}
