package chain

import (
	"errors"
	"fmt"
	"strings"
)

// CallError wraps an RPC or network failure on a contract read/write.
// These are transient from the orchestrator's point of view and are
// retried on the next poll cycle.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("chain call %s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// VoteRejectReason classifies why the contract reverted a vote submission.
type VoteRejectReason string

var (
	// RejectAlreadyVoted marks a retried submission of an already-recorded
	// vote. Benign: the vote is on chain, the retry just lost the race.
	RejectAlreadyVoted VoteRejectReason = "already_voted"
	// RejectSampleNotActive marks a vote on a sample whose session closed.
	RejectSampleNotActive VoteRejectReason = "sample_not_active"
	// RejectLengthMismatch marks mismatched sampleIds/labels arrays.
	RejectLengthMismatch VoteRejectReason = "length_mismatch"
	// RejectNotAuthorized marks a submission from a non-registered voter.
	RejectNotAuthorized VoteRejectReason = "not_authorized"
	// RejectUnknown marks a revert the gateway could not classify.
	RejectUnknown VoteRejectReason = "unknown"
)

// VoteRejectedError is a contract revert surfaced as a typed rejection.
// The session stays in its current phase; the caller may retry.
type VoteRejectedError struct {
	Reason VoteRejectReason
	Detail string
}

func (e *VoteRejectedError) Error() string {
	return fmt.Sprintf("vote rejected (%s): %s", e.Reason, e.Detail)
}

// Benign reports whether the rejection can be ignored by a retrying
// caller because the intended state is already on chain.
func (e *VoteRejectedError) Benign() bool {
	return e.Reason == RejectAlreadyVoted
}

// AsVoteRejected extracts a VoteRejectedError from an error chain.
func AsVoteRejected(err error) (*VoteRejectedError, bool) {
	var vr *VoteRejectedError
	if errors.As(err, &vr) {
		return vr, true
	}
	return nil, false
}

// classifyRevert maps a transaction error onto a VoteRejectedError when
// the error looks like a contract revert, or nil when it is a plain
// transport failure.
func classifyRevert(err error) *VoteRejectedError {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "revert") {
		return nil
	}

	reason := RejectUnknown
	switch {
	case strings.Contains(msg, "already voted"):
		reason = RejectAlreadyVoted
	case strings.Contains(msg, "not active"), strings.Contains(msg, "inactive sample"):
		reason = RejectSampleNotActive
	case strings.Contains(msg, "length"), strings.Contains(msg, "mismatch"):
		reason = RejectLengthMismatch
	case strings.Contains(msg, "not authorized"), strings.Contains(msg, "unauthorized"), strings.Contains(msg, "not a registered voter"):
		reason = RejectNotAuthorized
	}

	return &VoteRejectedError{Reason: reason, Detail: err.Error()}
}
