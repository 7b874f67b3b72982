package pipeline

import (
	"errors"
	"time"

	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

// JobStatus represents the state of a single file conversion.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusExtracting JobStatus = "extracting"
	StatusRendering  JobStatus = "rendering"
	StatusWriting    JobStatus = "writing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Sentinel errors for per-file I/O.
var (
	ErrRead  = errors.New("failed to read input file")
	ErrWrite = errors.New("failed to write output file")
	// ErrInternal wraps a panic recovered while converting one file.
	ErrInternal = errors.New("internal error")
)

// Job tracks the conversion of one input file.
type Job struct {
	InputPath  string
	OutputPath string
	Mode       render.Mode
	Status     JobStatus
	Phase      string // Phase the job was in when it finished or failed
	Questions  int
	Err        error
	Duration   time.Duration
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewJob creates a queued job for path.
func NewJob(path string) *Job {
	now := time.Now()
	return &Job{
		InputPath: path,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus moves the job to a new state.
func (j *Job) SetStatus(status JobStatus) {
	j.Status = status
	if status != StatusCompleted && status != StatusFailed {
		j.Phase = string(status)
	}
	j.UpdatedAt = time.Now()
}

// Fail records err and marks the job failed in its current phase.
func (j *Job) Fail(err error) {
	j.Err = err
	j.SetStatus(StatusFailed)
}

// Succeeded reports whether the job completed.
func (j *Job) Succeeded() bool {
	return j.Status == StatusCompleted
}
