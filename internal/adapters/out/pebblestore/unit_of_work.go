package pebblestore

import (
	"context"
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
)

// ErrNoActiveTransaction is returned by Commit without a preceding Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers every write in an indexed batch, so reads inside the
// unit of work observe its own writes, and applies the batch atomically on
// Commit.
type UnitOfWork struct {
	store             *Store
	batch             *pebble.Batch
	trackedAggregates []TrackedAggregate
}

// Begin waits for the store's write slot. A second Begin while active is a
// no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.batch != nil {
		return nil
	}
	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.batch = uow.store.db.NewIndexedBatch()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit applies the batch. A context that ended before Commit discards the
// batch instead.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.batch == nil {
		return ErrNoActiveTransaction
	}
	defer uow.finish()

	if err := ctx.Err(); err != nil {
		return errs.NewRepositoryError("commit", err)
	}
	if err := uow.batch.Commit(pebble.Sync); err != nil {
		return errs.NewRepositoryError("commit", err)
	}
	return nil
}

// Rollback discards the batch. Without an active transaction it does nothing.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.batch == nil {
		return nil
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.finish()
	return nil
}

func (uow *UnitOfWork) TenderRepository() ports.TenderRepository {
	return &TenderRepository{session: uow.session(), tracker: uow}
}

func (uow *UnitOfWork) QuotationRepository() ports.QuotationRepository {
	return &QuotationRepository{session: uow.session(), tracker: uow}
}

func (uow *UnitOfWork) AwardRepository() ports.AwardRepository {
	return &AwardRepository{session: uow.session(), tracker: uow}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{session: uow.session()}
}

func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since Begin.
func (uow *UnitOfWork) TrackedAggregates() []TrackedAggregate {
	return append([]TrackedAggregate(nil), uow.trackedAggregates...)
}

func (uow *UnitOfWork) session() session {
	return session{store: uow.store, batch: uow.batch}
}

func (uow *UnitOfWork) finish() {
	_ = uow.batch.Close()
	uow.batch = nil
	uow.store.release()
}
