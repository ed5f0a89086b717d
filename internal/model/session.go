// Package model defines domain models for AL iteration orchestration.
package model

import "time"

// Phase describes where a project session currently is in its iteration lifecycle.
type Phase string

var (
	// PhaseIdle marks a session waiting for the next iteration to start.
	PhaseIdle Phase = "idle"
	// PhaseGeneratingSamples marks a session waiting for the AL engine to select a batch.
	PhaseGeneratingSamples Phase = "generating_samples"
	// PhaseVoting marks a session with an open on-chain voting batch.
	PhaseVoting Phase = "voting"
	// PhaseAggregating marks a session collecting finalized labels for a completed batch.
	PhaseAggregating Phase = "aggregating"
	// PhaseCompleted marks a session whose latest iteration finished cleanly.
	PhaseCompleted Phase = "completed"
	// PhaseError marks a session stopped by an irrecoverable error.
	PhaseError Phase = "error"
	// PhaseEnding marks a session whose project is terminating.
	PhaseEnding Phase = "ending"
)

// EndReason describes why a project session is ending.
type EndReason string

var (
	// EndReasonMaxRounds signals the configured iteration budget was reached.
	EndReasonMaxRounds EndReason = "max_rounds_reached"
	// EndReasonPoolExhausted signals the AL engine has no unlabeled samples left.
	EndReasonPoolExhausted EndReason = "unlabeled_pool_exhausted"
	// EndReasonChainTriggered signals the contract emitted a project-end event.
	EndReasonChainTriggered EndReason = "chain_triggered"
	// EndReasonUserRequested signals an explicit end-session call.
	EndReasonUserRequested EndReason = "user_requested"
)

// SessionState is the orchestrator's view of one project session.
// It has exactly one writer (the session owning it); everything handed
// out to readers is a deep snapshot.
type SessionState struct {
	ProjectID     string         `json:"project_id"`
	IsActive      bool           `json:"is_active"`
	Phase         Phase          `json:"phase"`
	Round         uint64         `json:"round"`
	BatchProgress *BatchProgress `json:"batch_progress,omitempty"`
	QuerySamples  []Sample       `json:"query_samples,omitempty"`
	Error         string         `json:"error,omitempty"`
	ShouldEnd     bool           `json:"should_end"`
	EndReason     EndReason      `json:"end_reason,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Clone returns a deep copy safe to hand to readers.
func (s SessionState) Clone() SessionState {
	out := s
	if s.BatchProgress != nil {
		bp := s.BatchProgress.Clone()
		out.BatchProgress = &bp
	}
	if s.QuerySamples != nil {
		out.QuerySamples = make([]Sample, len(s.QuerySamples))
		copy(out.QuerySamples, s.QuerySamples)
	}
	return out
}
