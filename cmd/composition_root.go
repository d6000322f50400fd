package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapi "tendering/internal/adapters/in/http"
	"tendering/internal/adapters/out/kafka"
	"tendering/internal/adapters/out/pdf"
	"tendering/internal/adapters/out/pebblestore"
	"tendering/internal/adapters/out/postgres"
	"tendering/internal/adapters/out/postgres/migrations"
	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/application/usecases/queries"
	"tendering/internal/core/ports"
	"tendering/internal/jobs"
	"tendering/internal/pkg/metrics"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	metrics    *metrics.Registry
	publisher  *kafka.Publisher
	workflow   *commands.Workflow
	closers    []func() error
}

// NewCompositionRoot opens the configured storage and wires the workflow.
// Postgres schemas are migrated before the first connection is used.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:  cfg,
		logger:  logger,
		metrics: metrics.NewRegistry(),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if err := migrations.Up(cfg.DatabaseURL()); err != nil {
			return nil, err
		}
		db, err := gorm.Open(gormpostgres.Open(cfg.DatabaseURL()), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		root.closers = append(root.closers, sqlDB.Close)
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	case StorageDriverPebble:
		store, err := pebblestore.Open(cfg.PebbleDir)
		if err != nil {
			return nil, err
		}
		root.closers = append(root.closers, store.Close)
		root.uowFactory = pebblestore.NewUnitOfWorkFactory(store)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	root.publisher = kafka.NewPublisher(cfg.KafkaHost, cfg.KafkaAwardsTopic)
	root.closers = append(root.closers, root.publisher.Close)
	root.workflow = commands.NewUnitOfWorkWorkflow(root.uowFactory, root.metrics)

	return root, nil
}

func (c *CompositionRoot) Workflow() *commands.Workflow {
	return c.workflow
}

func (c *CompositionRoot) readerFactory() queries.ReaderFactory {
	return queries.NewUnitOfWorkReaderFactory(c.uowFactory)
}

func (c *CompositionRoot) CreateGetTenderQueryHandler() queries.GetTenderQueryHandler {
	return queries.NewGetTenderQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetQuotationQueryHandler() queries.GetQuotationQueryHandler {
	return queries.NewGetQuotationQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateListAwardsQueryHandler() queries.ListAwardsQueryHandler {
	return queries.NewListAwardsQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateRenderQuotationPdfQueryHandler() queries.RenderQuotationPdfQueryHandler {
	return queries.NewRenderQuotationPdfQueryHandler(c.readerFactory(), pdf.NewRenderer())
}

func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		c.workflow,
		c.CreateGetTenderQueryHandler(),
		c.CreateGetQuotationQueryHandler(),
		c.CreateListAwardsQueryHandler(),
		c.CreateRenderQuotationPdfQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) RouterOptions() httpapi.RouterOptions {
	return httpapi.RouterOptions{
		ValidateRequests: c.config.OpenAPIValidation,
		Metrics:          c.metrics.Handler(),
	}
}

// CreateJobManager wires the background jobs. Both jobs work outside a unit
// of work: every repository call they make commits on its own.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	uow := c.uowFactory.Create()
	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(uow.OutboxRepository(), c.publisher, c.metrics,
			c.config.OutboxRelaySchedule, jobs.DefaultRelayBatchSize, c.logger),
		jobs.NewTenderStatusReconciliationJob(uow.TenderRepository(), c.workflow, c.metrics,
			c.config.ReconcileSchedule, c.logger),
	)
}

// Close releases the broker writer and the storage, in reverse order of
// acquisition.
func (c *CompositionRoot) Close(_ context.Context) error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	return errors.Join(errList...)
}
