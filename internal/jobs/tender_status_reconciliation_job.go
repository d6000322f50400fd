package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const DefaultReconcileSchedule = "0 */10 * * * *"

// TenderStatusReconciler recomputes the derived status of one tender.
type TenderStatusReconciler interface {
	ReconcileTenderStatus(ctx context.Context, cmd commands.ReconcileTenderStatusCommand) (bool, error)
}

type ReconcileObserver interface {
	ObserveReconciled()
}

type nopReconcileObserver struct{}

func (nopReconcileObserver) ObserveReconciled() {}

// TenderStatusReconciliationJob walks every tender and repairs a status that
// no longer matches the line states of its latest quotation.
type TenderStatusReconciliationJob struct {
	tenders    ports.TenderRepository
	reconciler TenderStatusReconciler
	observer   ReconcileObserver
	schedule   string
	timeout    time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewTenderStatusReconciliationJob(
	tenders ports.TenderRepository,
	reconciler TenderStatusReconciler,
	observer ReconcileObserver,
	schedule string,
	logger *slog.Logger,
) *TenderStatusReconciliationJob {
	if observer == nil {
		observer = nopReconcileObserver{}
	}
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &TenderStatusReconciliationJob{
		tenders:    tenders,
		reconciler: reconciler,
		observer:   observer,
		schedule:   schedule,
		timeout:    5 * time.Minute,
		cron:       newCron(),
		logger:     logger.With("component", "tender_status_reconciliation_job"),
	}
}

// Reconcile returns the number of repaired tenders. A failure on one tender
// does not stop the walk; the failures are joined into the returned error.
func (j *TenderStatusReconciliationJob) Reconcile(ctx context.Context) (int, error) {
	ids, err := j.tenders.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		repaired int
		errList  []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errList = append(errList, err)
			break
		}
		changed, err := j.reconcileOne(ctx, id)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if changed {
			repaired++
			j.observer.ObserveReconciled()
			j.logger.InfoContext(ctx, "Tender status repaired", "tender_id", id.String())
		}
	}
	return repaired, errors.Join(errList...)
}

func (j *TenderStatusReconciliationJob) reconcileOne(ctx context.Context, id kernel.UUID) (bool, error) {
	cmd, err := commands.NewReconcileTenderStatusCommand(id)
	if err != nil {
		return false, err
	}
	return j.reconciler.ReconcileTenderStatus(ctx, cmd)
}

func (j *TenderStatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Reconcile(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tender status reconciliation failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tender status reconciliation job started", "schedule", j.schedule)
	return nil
}

func (j *TenderStatusReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tender status reconciliation job stopped")
}
