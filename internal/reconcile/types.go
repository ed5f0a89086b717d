package reconcile

import (
	"context"
	"time"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainReader is the slice of the chain gateway the reconciler needs.
	ChainReader interface {
		BatchStatus(ctx context.Context) (chain.BatchStatus, error)
		BatchSampleIDs(ctx context.Context) ([]string, error)
		VotingHistory(ctx context.Context, round uint64) ([]chain.FinalizedVote, error)
		IsSampleActive(ctx context.Context, sampleID string) (bool, error)
	}

	// Metrics tracks reconciliation outcomes.
	Metrics interface {
		ObserveSnapshot(err error, started time.Time)
		ObserveAnomaly(round uint64)
	}
)
