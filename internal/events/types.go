package events

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

type (
	// LogWatcher is the slice of the chain gateway the bridge needs.
	LogWatcher interface {
		Watch(ctx context.Context, eventName string) (chan types.Log, event.Subscription, error)
		UnpackEvent(out any, eventName string, lg types.Log) error
	}

	// Metrics tracks event deliveries per contract event.
	Metrics interface {
		ObserveDelivery(eventName string, err error)
	}
)

// VotingSessionStarted signals that a sample opened for voting.
type VotingSessionStarted struct {
	SampleId string
	Round    *big.Int
}

// VotingSessionEnded signals that a sample finalized with a label.
type VotingSessionEnded struct {
	SampleId   string
	FinalLabel string
	Round      *big.Int
}

// ALBatchCompleted signals that the contract considers the round's
// batch done. The orchestrator verifies it against a fresh snapshot
// before trusting it.
type ALBatchCompleted struct {
	Round          *big.Int
	CompletedCount *big.Int
}

// ProjectEndTriggered signals an end condition raised on the contract.
type ProjectEndTriggered struct {
	Trigger string
	Reason  string
	Round   *big.Int
}
