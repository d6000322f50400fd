// Package tenderrepo persists tender aggregates and their requested items.
package tenderrepo

import (
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenderDTO maps a tender to the tenders table. Seq is assigned by the
// database and orders tenders by creation.
type TenderDTO struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CallReference     string             `gorm:"type:varchar(255);not null"`
	InternalReference string             `gorm:"type:varchar(255);not null"`
	StartsAt          time.Time          `gorm:"not null"`
	Deadline          time.Time          `gorm:"not null"`
	RequesterID       uuid.UUID          `gorm:"type:uuid;not null"`
	Status            int                `gorm:"type:smallint;not null"`
	Seq               int64              `gorm:"->;autoIncrement"`
	Items             []RequestedItemDTO `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE"`
}

func (TenderDTO) TableName() string {
	return "tenders"
}

type RequestedItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(20,4);not null"`
}

func (RequestedItemDTO) TableName() string {
	return "requested_items"
}

func fromDomain(t *tender.Tender) TenderDTO {
	tenderID := t.ID().Bytes()
	items := make([]RequestedItemDTO, 0, len(t.Items()))
	for i, item := range t.Items() {
		items = append(items, RequestedItemDTO{
			ID:          item.ID().Bytes(),
			TenderID:    tenderID,
			Position:    i,
			ProductID:   item.ProductID().Bytes(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
		})
	}

	return TenderDTO{
		ID:                tenderID,
		CallReference:     t.CallReference(),
		InternalReference: t.InternalReference(),
		StartsAt:          t.StartsAt().UTC(),
		Deadline:          t.Deadline().UTC(),
		RequesterID:       t.RequesterID().Bytes(),
		Status:            int(t.Status()),
		Items:             items,
	}
}

func toDomain(dto TenderDTO) (*tender.Tender, error) {
	items := make([]tender.RequestedItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := tender.NewRequestedItem(
			kernel.UUIDFromGoogle(itemDTO.ID),
			kernel.UUIDFromGoogle(itemDTO.ProductID),
			itemDTO.Description,
			itemDTO.Quantity,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return tender.RestoreTender(
		kernel.UUIDFromGoogle(dto.ID),
		dto.CallReference,
		dto.InternalReference,
		dto.StartsAt.UTC(),
		dto.Deadline.UTC(),
		kernel.UUIDFromGoogle(dto.RequesterID),
		items,
		tender.Status(dto.Status),
	)
}
