package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	names   []string
	started int
}

// NewJobManager creates a job manager for the outbox relay.
func NewJobManager(outboxRelay *OutboxRelayJob) *JobManager {
	jm := &JobManager{}
	jm.Add("outbox relay", outboxRelay)
	return jm
}

// Add registers another job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, job)
	jm.names = append(jm.names, name)
}

// StartAll starts all scheduled jobs.
// When one fails, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
		jm.started = i + 1
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := jm.started - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.started = 0
}
