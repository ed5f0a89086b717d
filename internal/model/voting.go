package model

import "time"

// VotingRecord captures one finalized sample vote. Created only when the
// chain reports the sample's voting session finalized; immutable after.
type VotingRecord struct {
	SampleID         string            `json:"sample_id"`
	FinalLabel       string            `json:"final_label"`
	Votes            map[string]string `json:"votes"`
	Distribution     map[string]uint64 `json:"distribution"`
	Timestamp        time.Time         `json:"timestamp"`
	Round            uint64            `json:"round"`
	ConsensusReached bool              `json:"consensus_reached"`
}

// BatchProgress is the reconciler-owned view of the current voting batch.
// It is recomputed from chain reads on every poll or event and is never
// the source of truth, only a cache invalidated on each read.
type BatchProgress struct {
	Round            uint64   `json:"round"`
	TotalSamples     int      `json:"total_samples"`
	CompletedSamples int      `json:"completed_samples"`
	SampleIDs        []string `json:"sample_ids"`
	BatchActive      bool     `json:"batch_active"`
}

// Clone returns a deep copy.
func (b BatchProgress) Clone() BatchProgress {
	out := b
	if b.SampleIDs != nil {
		out.SampleIDs = make([]string, len(b.SampleIDs))
		copy(out.SampleIDs, b.SampleIDs)
	}
	return out
}

// Complete reports whether every sample in the batch has finalized.
func (b BatchProgress) Complete() bool {
	return b.TotalSamples > 0 && b.CompletedSamples >= b.TotalSamples
}
