// Package awardrepo persists awards. Awards are append-only.
package awardrepo

import (
	"time"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AwardDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	QuotationID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	TenderID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status           int                 `gorm:"type:smallint;not null"`
	AdjudicationDate time.Time           `gorm:"not null"`
	Seq              int64               `gorm:"->;autoIncrement"`
	AwardedItems     []AwardedItemDTO    `gorm:"foreignKey:AwardID;constraint:OnDelete:CASCADE"`
	NonAwardedItems  []NonAwardedItemDTO `gorm:"foreignKey:AwardID;constraint:OnDelete:CASCADE"`
}

func (AwardDTO) TableName() string {
	return "awards"
}

type AwardedItemDTO struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement"`
	AwardID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineID              uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID           *uuid.UUID      `gorm:"type:uuid"`
	Description         string          `gorm:"type:text;not null"`
	Quantity            decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	LineQuantity        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	UnitPriceWithoutTax decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	TaxPercentage       decimal.Decimal `gorm:"type:numeric(7,4);not null"`
}

func (AwardedItemDTO) TableName() string {
	return "awarded_items"
}

type NonAwardedItemDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	AwardID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineID          uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID       *uuid.UUID      `gorm:"type:uuid"`
	Description     string          `gorm:"type:text;not null"`
	CompetitorName  string          `gorm:"type:varchar(255);not null"`
	CompetitorTaxID string          `gorm:"type:varchar(64);not null"`
	CompetitorPrice decimal.Decimal `gorm:"type:numeric(20,4);not null"`
}

func (NonAwardedItemDTO) TableName() string {
	return "non_awarded_items"
}

func fromDomain(a *award.Award) AwardDTO {
	awardID := a.ID().Bytes()
	dto := AwardDTO{
		ID:               awardID,
		QuotationID:      a.QuotationID().Bytes(),
		TenderID:         a.TenderID().Bytes(),
		Status:           int(a.Status()),
		AdjudicationDate: a.AdjudicationDate().UTC(),
	}
	for _, item := range a.AwardedItems() {
		dto.AwardedItems = append(dto.AwardedItems, AwardedItemDTO{
			AwardID:             awardID,
			LineID:              item.LineID().Bytes(),
			ProductID:           pgutil.OptionalRaw(item.ProductID()),
			Description:         item.Description(),
			Quantity:            item.Quantity(),
			LineQuantity:        item.LineQuantity(),
			UnitPriceWithoutTax: item.UnitPriceWithoutTax(),
			TaxPercentage:       item.TaxPercentage(),
		})
	}
	for _, item := range a.NonAwardedItems() {
		dto.NonAwardedItems = append(dto.NonAwardedItems, NonAwardedItemDTO{
			AwardID:         awardID,
			LineID:          item.LineID().Bytes(),
			ProductID:       pgutil.OptionalRaw(item.ProductID()),
			Description:     item.Description(),
			CompetitorName:  item.CompetitorName(),
			CompetitorTaxID: item.CompetitorTaxID(),
			CompetitorPrice: item.CompetitorPrice(),
		})
	}
	return dto
}

func toDomain(dto AwardDTO) (*award.Award, error) {
	awarded := make([]award.AwardedItem, 0, len(dto.AwardedItems))
	for _, itemDTO := range dto.AwardedItems {
		item, err := award.NewAwardedItem(
			kernel.UUIDFromGoogle(itemDTO.LineID),
			pgutil.OptionalID(itemDTO.ProductID),
			itemDTO.Description,
			itemDTO.Quantity,
			itemDTO.LineQuantity,
			itemDTO.UnitPriceWithoutTax,
			itemDTO.TaxPercentage,
		)
		if err != nil {
			return nil, err
		}
		awarded = append(awarded, item)
	}

	nonAwarded := make([]award.NonAwardedItem, 0, len(dto.NonAwardedItems))
	for _, itemDTO := range dto.NonAwardedItems {
		item, err := award.NewNonAwardedItem(
			kernel.UUIDFromGoogle(itemDTO.LineID),
			pgutil.OptionalID(itemDTO.ProductID),
			itemDTO.Description,
			itemDTO.CompetitorName,
			itemDTO.CompetitorTaxID,
			itemDTO.CompetitorPrice,
		)
		if err != nil {
			return nil, err
		}
		nonAwarded = append(nonAwarded, item)
	}

	return award.NewAward(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.QuotationID),
		kernel.UUIDFromGoogle(dto.TenderID),
		award.Status(dto.Status),
		awarded,
		nonAwarded,
		dto.AdjudicationDate.UTC(),
	)
}
