package quotationrepo

import (
	"context"
	"errors"
	"fmt"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements ports.QuotationRepository using GORM.
//
// Writes are guarded twice: Get locks the quotation row for the rest of the
// transaction, and Update only succeeds against the version that was read.
type GormQuotationRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormQuotationRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormQuotationRepository {
	return &GormQuotationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new quotation and its lines. The partial unique index on open
// quotations turns a concurrent second open quotation into
// errs.DuplicateOpenQuotationError.
func (r *GormQuotationRepository) Add(ctx context.Context, aggregate *quotation.Quotation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		if pgutil.IsUniqueViolation(err) && aggregate.IsOpen() {
			if existing, lookupErr := r.openQuotationID(ctx, aggregate.TenderID()); lookupErr == nil &&
				existing != aggregate.ID().Bytes() {
				return errs.NewDuplicateOpenQuotationError(aggregate.TenderID().String(), existing.String())
			}
		}
		return pgutil.Wrap("add quotation", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the quotation header and lines when the stored version
// matches, then advances the aggregate version.
func (r *GormQuotationRepository) Update(ctx context.Context, aggregate *quotation.Quotation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&QuotationDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"identifier":    dto.Identifier,
				"currency":      dto.Currency,
				"payment_terms": dto.PaymentTerms,
				"state":         dto.State,
				"version":       gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate)
		}

		if err := tx.Where("quotation_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Lines) == 0 {
			return nil
		}
		return tx.Create(&dto.Lines).Error
	})
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrRepository) {
			return err
		}
		return pgutil.Wrap("update quotation", err)
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a quotation with its lines, locking the quotation row when called
// inside a transaction.
func (r *GormQuotationRepository) Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "get quotation", id.String(), "id = ?", id.Bytes())
}

func (r *GormQuotationRepository) GetOpenByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "get open quotation", "open for tender "+tenderID.String(),
		"tender_id = ? AND state = ?", tenderID.Bytes(), int(quotation.Open))
}

func (r *GormQuotationRepository) GetLatestByTender(ctx context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "get latest quotation", "latest for tender "+tenderID.String(),
		"tender_id = ?", tenderID.Bytes())
}

// first returns the most recently created quotation matching the condition.
func (r *GormQuotationRepository) first(
	ctx context.Context,
	operation string,
	notFoundID string,
	query string,
	args ...any,
) (*quotation.Quotation, error) {
	var dto QuotationDTO
	err := pgutil.ForUpdate(r.db.WithContext(ctx)).
		Where(query, args...).
		Order("seq DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quotation", notFoundID)
		}
		return nil, pgutil.Wrap(operation, err)
	}

	if err = r.db.WithContext(ctx).
		Where("quotation_id = ?", dto.ID).
		Order("position").
		Find(&dto.Lines).Error; err != nil {
		return nil, pgutil.Wrap(operation+" lines", err)
	}

	return toDomain(dto)
}

func (r *GormQuotationRepository) openQuotationID(ctx context.Context, tenderID kernel.UUID) (uuid.UUID, error) {
	var dto QuotationDTO
	err := r.db.WithContext(ctx).
		Select("id").
		Where("tender_id = ? AND state = ?", tenderID.Bytes(), int(quotation.Open)).
		Take(&dto).Error
	return dto.ID, err
}

func (r *GormQuotationRepository) missingOrStale(tx *gorm.DB, aggregate *quotation.Quotation) error {
	var count int64
	if err := tx.Model(&QuotationDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("quotation", aggregate.ID().String())
	}
	return errs.NewRepositoryError(
		"update quotation",
		fmt.Errorf("%w: version %d of quotation %s is stale", errs.ErrConcurrentModification, aggregate.Version(), aggregate.ID()),
	)
}
