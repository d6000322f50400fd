package awardrepo

import (
	"context"
	"errors"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAwardRepository implements ports.AwardRepository using GORM.
type GormAwardRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormAwardRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormAwardRepository {
	return &GormAwardRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAwardRepository) Add(ctx context.Context, aggregate *award.Award) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.Wrap("add award", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAwardRepository) Get(ctx context.Context, id kernel.UUID) (*award.Award, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AwardDTO
	err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("award", id.String())
		}
		return nil, pgutil.Wrap("get award", err)
	}

	return toDomain(dto)
}

func (r *GormAwardRepository) ListByTender(ctx context.Context, tenderID kernel.UUID) ([]*award.Award, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, "list awards by tender", "tender_id = ?", tenderID.Bytes())
}

func (r *GormAwardRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*award.Award, error) {
	if err := quotationID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, "list awards by quotation", "quotation_id = ?", quotationID.Bytes())
}

func (r *GormAwardRepository) list(ctx context.Context, operation string, query string, args ...any) ([]*award.Award, error) {
	var dtos []AwardDTO
	if err := r.withItems(ctx).
		Where(query, args...).
		Order("adjudication_date").
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, pgutil.Wrap(operation, err)
	}

	awards := make([]*award.Award, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	return awards, nil
}

// withItems preloads both item tables in insertion order.
func (r *GormAwardRepository) withItems(ctx context.Context) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	return r.db.WithContext(ctx).
		Preload("AwardedItems", byID).
		Preload("NonAwardedItems", byID)
}
