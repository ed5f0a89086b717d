package session

import "errors"

var (
	// ErrIterationInFlight rejects a re-entrant StartIteration while a
	// previous iteration has not reached completed.
	ErrIterationInFlight = errors.New("iteration already in flight")

	// ErrSessionEnded rejects operations on a session that is ending,
	// errored or closed.
	ErrSessionEnded = errors.New("session has ended")

	// ErrNoPendingBatch rejects a vote submission when no generated
	// batch is awaiting votes.
	ErrNoPendingBatch = errors.New("no sample batch awaiting votes")

	// ErrUnknownSample rejects a vote for a sample id outside the
	// current batch.
	ErrUnknownSample = errors.New("sample is not part of the current batch")

	// ErrLabelNotAllowed rejects a vote whose label is outside the
	// project's label space.
	ErrLabelNotAllowed = errors.New("label is not in the project label space")

	// ErrSessionExists rejects creating a second live session for the
	// same project.
	ErrSessionExists = errors.New("project already has a live session")

	// ErrSessionNotFound is returned for lookups of unknown projects.
	ErrSessionNotFound = errors.New("no session for project")
)
