package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when a job id has no entry in the job store.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobDescriptionRequired is returned when a submission carries no
	// job description text.
	ErrJobDescriptionRequired = errors.New("job_description is required")

	// ErrNoCVRefs is returned when a submission carries no CV references.
	ErrNoCVRefs = errors.New("at least one CV reference is required")

	// ErrTooManyCVs is returned when a submission exceeds the per-job CV cap.
	ErrTooManyCVs = errors.New("maximum 100 CVs allowed per job")

	// ErrUnsupportedFormat is returned by text extraction for file types it
	// cannot handle. The affected candidate is dropped; the job continues.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// NotCompletedError is returned when results are requested for a job that has
// not reached the completed state. It carries the current status so callers
// can name it in their response.
type NotCompletedError struct {
	Status string
}

func (e *NotCompletedError) Error() string {
	return fmt.Sprintf("job is not completed, current status: %s", e.Status)
}

// FatalError marks a workflow failure that fails the whole job: JD analysis
// or ranking going down, as opposed to a recoverable per-candidate failure.
type FatalError struct {
	Stage string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// NewFatalError wraps err as a fatal workflow failure at the named stage.
func NewFatalError(stage string, err error) error {
	return &FatalError{Stage: stage, Err: err}
}
