package session

import (
	"context"
	"time"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/events"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/pubsub"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainGateway is the slice of the contract gateway the orchestrator needs.
	ChainGateway interface {
		Project(ctx context.Context, projectID string) (model.Project, error)
		CurrentRound(ctx context.Context) (uint64, error)
		ShouldEnd(ctx context.Context) (bool, string, error)
		VotingHistory(ctx context.Context, round uint64) ([]chain.FinalizedVote, error)
		SampleVotes(ctx context.Context, sampleID string) (chain.VoteDetail, error)
		SubmitBatchVote(ctx context.Context, sampleIDs, labels []string) error
		StartNextRound(ctx context.Context) error
	}

	// ComputeGateway is the AL engine client surface.
	ComputeGateway interface {
		Health(ctx context.Context) error
		StartIteration(ctx context.Context, projectID string, round uint64, configOverride map[string]any) ([]model.Sample, error)
		SubmitLabels(ctx context.Context, projectID string, round uint64, labeled []model.LabeledSample) (bool, error)
		FinalTraining(ctx context.Context, projectID string, round uint64) error
	}

	// SampleGenerator produces query samples locally when the compute
	// service is unreachable.
	SampleGenerator interface {
		Generate(round uint64, batchSize int) []model.Sample
	}

	// Reconciler resolves the authoritative batch view from the chain.
	Reconciler interface {
		Snapshot(ctx context.Context) (model.BatchProgress, error)
		ApplyCompletion(round uint64, sampleID string) bool
		Forget(round uint64)
	}

	// EventSource exposes the contract event topics and the live flag.
	// Satisfied by the event bridge; nil means polling only.
	EventSource interface {
		Started() *pubsub.Topic[events.VotingSessionStarted]
		Ended() *pubsub.Topic[events.VotingSessionEnded]
		BatchCompleted() *pubsub.Topic[events.ALBatchCompleted]
		EndTriggered() *pubsub.Topic[events.ProjectEndTriggered]
		Live() bool
	}

	// Metrics tracks orchestrator activity.
	Metrics interface {
		ObserveTransition(from, to model.Phase)
		ObserveIteration(err error, started time.Time)
	}
)
