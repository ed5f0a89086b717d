package session

import "time"

const (
	defaultPollInterval     = 5 * time.Second
	defaultEndCheckInterval = 30 * time.Second
	defaultVoteWorkers      = 4

	// finalTrainingTimeout bounds the best-effort final training call
	// issued while a session is ending.
	finalTrainingTimeout = 2 * time.Minute
)
