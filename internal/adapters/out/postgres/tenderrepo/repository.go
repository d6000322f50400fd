package tenderrepo

import (
	"context"
	"errors"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenderRepository implements ports.TenderRepository using GORM.
type GormTenderRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormTenderRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormTenderRepository {
	return &GormTenderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tender together with its requested items.
func (r *GormTenderRepository) Add(ctx context.Context, aggregate *tender.Tender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.Wrap("add tender", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the derived status. Requested items never change.
func (r *GormTenderRepository) Update(ctx context.Context, aggregate *tender.Tender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TenderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return pgutil.Wrap("update tender", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tender", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a tender. Inside a transaction the tender row stays locked until
// commit, which serializes status derivation per tender.
func (r *GormTenderRepository) Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TenderDTO
	err := pgutil.ForUpdate(r.db.WithContext(ctx)).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tender", id.String())
		}
		return nil, pgutil.Wrap("get tender", err)
	}

	if err = r.db.WithContext(ctx).
		Where("tender_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, pgutil.Wrap("get requested items", err)
	}

	return toDomain(dto)
}

func (r *GormTenderRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&TenderDTO{}).
		Order("seq").
		Pluck("id", &raw).Error; err != nil {
		return nil, pgutil.Wrap("list tender ids", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.UUIDFromGoogle(id))
	}
	return ids, nil
}
