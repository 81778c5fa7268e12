package usecase

import "errors"

var (
	// ErrPrecondition marks a submission rejected locally before any
	// request was issued. Never retried.
	ErrPrecondition = errors.New("precondition failed")

	// ErrPollInFlight rejects a second concurrent poll loop for an id.
	ErrPollInFlight = errors.New("poll already in flight")

	// ErrRegenerationInFlight rejects a second regeneration for the same
	// post while one is outstanding.
	ErrRegenerationInFlight = errors.New("regeneration already in flight")

	// ErrUnknownTask means the id is not in the local collection.
	ErrUnknownTask = errors.New("unknown task")

	// ErrNotReady guards operations that require a completed plan.
	ErrNotReady = errors.New("task is not ready")
)
