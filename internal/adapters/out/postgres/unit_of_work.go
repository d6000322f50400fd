// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work hands out repositories bound to one transaction, so a
// quotation, the award it produced, the derived tender status and the
// outbox messages describing them are committed together:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	q, err := uow.QuotationRepository().Get(ctx, quotationID) // SELECT ... FOR UPDATE
//	...
//	if err := uow.AwardRepository().Add(ctx, a); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin run every statement on their own
// connection and take no row locks. The query side relies on that.
package postgres

import (
	"context"

	"tendering/internal/adapters/out/postgres/awardrepo"
	"tendering/internal/adapters/out/postgres/outboxrepo"
	"tendering/internal/adapters/out/postgres/quotationrepo"
	"tendering/internal/adapters/out/postgres/tenderrepo"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool. Each instance has its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory expects db to be opened with
// gorm.Config{TranslateError: true} so unique violations can be recognised.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin starts a transaction. Calling Begin again while a transaction is
// active is a no-op. Driver failures are reported as errs.RepositoryError.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.WrapRepository("begin transaction", tx.Error)
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
// A failed commit (lost connection, serialization failure, cancelled
// context) is an errs.RepositoryError and nothing of the unit of work is
// persisted.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return errs.WrapRepository("commit transaction", err)
}

// Rollback discards the active transaction. Without one it does nothing, so
// handlers can defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) TenderRepository() ports.TenderRepository {
	return tenderrepo.NewGormTenderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) QuotationRepository() ports.QuotationRepository {
	return quotationrepo.NewGormQuotationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AwardRepository() ports.AwardRepository {
	return awardrepo.NewGormAwardRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate is called by repositories after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return append([]TrackedAggregate(nil), uow.trackedAggregates...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
