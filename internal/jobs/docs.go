// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// OutboxRelayJob publishes the domain events that the unit of work wrote to the
// outbox. It runs on OUTBOX_RELAY_SCHEDULE (every two seconds by default) and
// handles up to OUTBOX_BATCH_SIZE events per tick. Events whose publish fails stay
// pending and are retried on the next tick.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, jobs.OutboxRelayConfig{BatchSize: 100}, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
