package model

import "time"

// Project mirrors the on-chain project configuration. Instances are
// point-in-time reads; the orchestrator refreshes them before every
// decision point rather than caching.
type Project struct {
	ID             string
	CurrentRound   uint64
	MaxRounds      uint64
	QueryBatchSize uint64
	LabelSpace     []string
	VotingTimeout  time.Duration
}

// SampleSource tags where a query sample came from.
type SampleSource string

var (
	// SourceALEngine marks samples selected by the real query strategy.
	SourceALEngine SampleSource = "al_engine"
	// SourceSimulationFallback marks samples generated locally because the
	// compute service was unreachable. Tests and operators assert on this.
	SourceSimulationFallback SampleSource = "simulation_fallback"
)

// Sample is one dataset row selected for labeling. OriginalIndex is the
// position in the canonical dataset and the only field the compute side
// strictly requires back; SampleID is an orchestrator-local correlation
// key never reused across rounds.
type Sample struct {
	SampleID      string         `json:"sample_id"`
	OriginalIndex int            `json:"original_index"`
	Features      map[string]any `json:"features,omitempty"`
	Source        SampleSource   `json:"source"`
	Round         uint64         `json:"round"`
}

// LabeledSample is the shape pushed back to the compute service after a
// batch finalizes. UnknownLabel marks samples without a finalized voting
// record so the engine can filter them downstream.
type LabeledSample struct {
	SampleID      string         `json:"sample_id"`
	OriginalIndex int            `json:"original_index"`
	Features      map[string]any `json:"sample_data,omitempty"`
	Label         string         `json:"label"`
	Consensus     bool           `json:"consensus_reached"`
}

// UnknownLabel is assigned when no finalized voting record exists for a
// sample at aggregation time.
const UnknownLabel = "unknown"
