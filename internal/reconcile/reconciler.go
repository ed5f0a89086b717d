// Package reconcile computes the authoritative view of the current
// voting batch from raw chain reads.
package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
)

// Reconciler merges point-in-time chain reads with event-applied
// completions into a single BatchProgress snapshot. The snapshot is
// recomputed on every call and is never a source of truth on its own; a
// freshly constructed reconciler re-derives the whole view from the
// chain, which is what makes session resume after a reload safe.
type Reconciler struct {
	chain   ChainReader
	metrics Metrics
	logger  *zap.Logger

	mu sync.Mutex
	// completions holds sample ids observed as finalized via events,
	// keyed by round. Chain reads may lag event delivery; the union of
	// both keeps completedSamples monotonic within a round.
	completions map[uint64]map[string]struct{}
}

// New builds a Reconciler.
func New(chainReader ChainReader, metrics Metrics, logger *zap.Logger) (*Reconciler, error) {
	if chainReader == nil {
		return nil, errors.New("chain reader is required")
	}
	if metrics == nil {
		return nil, errors.New("reconciler metrics is required")
	}
	return &Reconciler{
		chain:       chainReader,
		metrics:     metrics,
		logger:      logger,
		completions: make(map[uint64]map[string]struct{}),
	}, nil
}

// ApplyCompletion records a sample finalization observed via an event.
// Idempotent: re-applying the same completion reports false and changes
// nothing, so duplicated events never double-count.
func (r *Reconciler) ApplyCompletion(round uint64, sampleID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.completions[round]
	if !ok {
		set = make(map[string]struct{})
		r.completions[round] = set
	}
	if _, seen := set[sampleID]; seen {
		return false
	}
	set[sampleID] = struct{}{}
	return true
}

// Forget drops event-applied completions for rounds at or below the
// given round. Called once a round's labels have been collected.
func (r *Reconciler) Forget(round uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for rnd := range r.completions {
		if rnd <= round {
			delete(r.completions, rnd)
		}
	}
}

// Snapshot recomputes BatchProgress from chain reads merged with
// event-applied completions.
//
// The contract may report batchActive=false after a quorum votes, while
// registered voters are still eligible. That premature finalization is
// compensated here: batchActive=false is trusted as genuine completion
// only when every sample in the batch has finalized; otherwise the
// round is reported as still open so remaining voters can participate.
func (r *Reconciler) Snapshot(ctx context.Context) (progress model.BatchProgress, err error) {
	started := time.Now()
	defer func() {
		r.metrics.ObserveSnapshot(err, started)
	}()

	status, err := r.chain.BatchStatus(ctx)
	if err != nil {
		return model.BatchProgress{}, err
	}
	ids, err := r.chain.BatchSampleIDs(ctx)
	if err != nil {
		return model.BatchProgress{}, err
	}
	history, err := r.chain.VotingHistory(ctx, status.Round)
	if err != nil {
		return model.BatchProgress{}, err
	}

	finalized := make(map[string]struct{}, len(history))
	for _, vote := range history {
		finalized[vote.SampleID] = struct{}{}
	}

	r.mu.Lock()
	eventCompleted := r.completions[status.Round]
	for id := range eventCompleted {
		finalized[id] = struct{}{}
	}
	r.mu.Unlock()

	completed := 0
	for _, id := range ids {
		if _, ok := finalized[id]; ok {
			completed++
			continue
		}
		// A closed sample without a history entry still cannot accept
		// votes; count it so the batch can terminate.
		active, activeErr := r.chain.IsSampleActive(ctx, id)
		if activeErr != nil {
			return model.BatchProgress{}, activeErr
		}
		if !active {
			completed++
		}
	}

	total := status.TotalSamples
	if len(ids) > 0 {
		total = len(ids)
	}
	if completed > total {
		completed = total
	}

	batchActive := status.Active
	if !batchActive && completed < total {
		r.metrics.ObserveAnomaly(status.Round)
		r.logger.Warn("contract finalized batch before all samples completed; keeping round open",
			zap.Uint64("round", status.Round),
			zap.Int("completed", completed),
			zap.Int("total", total))
		batchActive = true
	}

	return model.BatchProgress{
		Round:            status.Round,
		TotalSamples:     total,
		CompletedSamples: completed,
		SampleIDs:        ids,
		BatchActive:      batchActive,
	}, nil
}
