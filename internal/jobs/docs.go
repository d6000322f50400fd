// Package jobs provides scheduled background tasks for the tendering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Publishes committed outbox messages (award.created,
// quotation.finalized, ...) to the message broker and marks them published
// 2. TenderStatusReconciliationJob - Recomputes the status of every tender from
// its latest quotation and stores the result when it drifted
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOutboxRelayJob(outbox, publisher, registry, cfg.OutboxRelaySchedule, 0, logger),
//		jobs.NewTenderStatusReconciliationJob(tenders, workflow, registry, cfg.ReconcileSchedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A run never overlaps the previous run of the same job
// - The relay leaves messages unpublished when the broker rejects them
// - Reconciliation keeps walking after a failed tender and logs the joined errors
package jobs
