package job

import "fmt"

// Status is the lifecycle state of an ingest job.
type Status string

const (
	// StatusProcessing means items are still being embedded and stored.
	StatusProcessing Status = "processing"
	// StatusCompleted means all items have been handled.
	StatusCompleted Status = "completed"
)

// Job tracks the progress of one ingest batch.
type Job struct {
	id        string
	status    Status
	progress  int
	total     int
	processed int
	failed    int
}

// New creates a processing job for a batch of the given size.
func New(id string, total int) (Job, error) {
	if id == "" {
		return Job{}, fmt.Errorf("job id is required")
	}
	if total <= 0 {
		return Job{}, fmt.Errorf("job total must be positive, got %d", total)
	}
	return Job{id: id, status: StatusProcessing, total: total}, nil
}

// Reconstruct creates a Job without validation (storage hydration).
func Reconstruct(id string, status Status, progress, total, processed, failed int) Job {
	return Job{
		id:        id,
		status:    status,
		progress:  progress,
		total:     total,
		processed: processed,
		failed:    failed,
	}
}

// WithProgress returns a copy with the item counters advanced.
func (j Job) WithProgress(progress, processed, failed int) Job {
	j.progress = progress
	j.processed = processed
	j.failed = failed
	return j
}

// Completed returns a copy marked as done.
func (j Job) Completed() Job {
	j.status = StatusCompleted
	j.progress = j.total
	return j
}

// ID returns the job identifier.
func (j Job) ID() string { return j.id }

// Status returns the lifecycle state.
func (j Job) Status() Status { return j.status }

// Progress returns the number of items handled so far.
func (j Job) Progress() int { return j.progress }

// Total returns the batch size.
func (j Job) Total() int { return j.total }

// Processed returns the number of successfully ingested items.
func (j Job) Processed() int { return j.processed }

// Failed returns the number of items that could not be ingested.
func (j Job) Failed() int { return j.failed }
