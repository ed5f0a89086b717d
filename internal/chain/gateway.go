package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sethvargo/go-retry"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/safe"
)

type (
	// Metrics records per-operation outcomes for contract calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// BatchStatus is the contract's own view of the current voting batch.
type BatchStatus struct {
	Round        uint64
	TotalSamples int
	Active       bool
}

// FinalizedVote is one entry of a round's voting history.
type FinalizedVote struct {
	SampleID  string
	Label     string
	Timestamp time.Time
}

// VoteDetail is the per-sample voter breakdown.
type VoteDetail struct {
	Votes        map[string]string
	Distribution map[string]uint64
}

// Config carries connection parameters for the project contract.
type Config struct {
	RPCURL          string
	ContractAddress string
	PrivateKeyHex   string
	ChainID         int64
	ReadRateLimit   int
	RetryBase       time.Duration
	MaxRetries      uint64
}

// Gateway is a thin, point-in-time client for the ALProject voting
// contract. No read is cached beyond a single call.
type Gateway struct {
	contract *bind.BoundContract
	backend  bind.DeployBackend
	signer   *bind.TransactOpts
	rl       ratelimit.Limiter
	metrics  Metrics
	logger   *zap.Logger

	retryBase  time.Duration
	maxRetries uint64
}

// New dials the RPC endpoint and binds the project contract. An empty
// private key yields a read-only gateway.
func New(cfg Config, metrics Metrics, logger *zap.Logger) (*Gateway, error) {
	if cfg.ContractAddress == "" {
		return nil, errors.New("contract address is required")
	}
	if metrics == nil {
		return nil, errors.New("chain metrics is required")
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc endpoint: %w", err)
	}

	parsed, err := ProjectABI()
	if err != nil {
		return nil, fmt.Errorf("parse project abi: %w", err)
	}

	var signer *bind.TransactOpts
	if cfg.PrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(cfg.PrivateKeyHex)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		signer, err = bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
		if err != nil {
			return nil, fmt.Errorf("build transactor: %w", err)
		}
	}

	address := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(address, parsed, client, client, client)

	return newGateway(contract, client, signer, cfg, metrics, logger), nil
}

func newGateway(
	contract *bind.BoundContract,
	backend bind.DeployBackend,
	signer *bind.TransactOpts,
	cfg Config,
	metrics Metrics,
	logger *zap.Logger,
) *Gateway {
	rps := cfg.ReadRateLimit
	if rps <= 0 {
		rps = defaultReadRateLimit
	}
	base := cfg.RetryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	return &Gateway{
		contract:   contract,
		backend:    backend,
		signer:     signer,
		rl:         ratelimit.New(rps),
		metrics:    metrics,
		logger:     logger,
		retryBase:  base,
		maxRetries: maxRetries,
	}
}

const (
	defaultReadRateLimit = 20
	defaultRetryBase     = 200 * time.Millisecond
	defaultMaxRetries    = 2
)

// CanWrite reports whether the gateway holds a signing key.
func (g *Gateway) CanWrite() bool { return g.signer != nil }

// CurrentRound reads the active round number.
func (g *Gateway) CurrentRound(ctx context.Context) (uint64, error) {
	out, err := g.call(ctx, "currentRound")
	if err != nil {
		return 0, err
	}
	return unpackUint64(out, 0, "currentRound")
}

// Project reads the full project configuration in one pass. Used by the
// orchestrator to refresh its view before each decision point.
func (g *Gateway) Project(ctx context.Context, projectID string) (model.Project, error) {
	round, err := g.CurrentRound(ctx)
	if err != nil {
		return model.Project{}, err
	}
	maxOut, err := g.call(ctx, "maxRounds")
	if err != nil {
		return model.Project{}, err
	}
	maxRounds, err := unpackUint64(maxOut, 0, "maxRounds")
	if err != nil {
		return model.Project{}, err
	}
	sizeOut, err := g.call(ctx, "queryBatchSize")
	if err != nil {
		return model.Project{}, err
	}
	batchSize, err := unpackUint64(sizeOut, 0, "queryBatchSize")
	if err != nil {
		return model.Project{}, err
	}
	timeoutOut, err := g.call(ctx, "votingTimeout")
	if err != nil {
		return model.Project{}, err
	}
	timeoutSec, err := unpackUint64(timeoutOut, 0, "votingTimeout")
	if err != nil {
		return model.Project{}, err
	}
	labels, err := g.LabelSpace(ctx)
	if err != nil {
		return model.Project{}, err
	}

	return model.Project{
		ID:             projectID,
		CurrentRound:   round,
		MaxRounds:      maxRounds,
		QueryBatchSize: batchSize,
		LabelSpace:     labels,
		VotingTimeout:  time.Duration(timeoutSec) * time.Second,
	}, nil
}

// LabelSpace reads the permitted label values.
func (g *Gateway) LabelSpace(ctx context.Context) ([]string, error) {
	out, err := g.call(ctx, "labelSpace")
	if err != nil {
		return nil, err
	}
	return unpackStrings(out, 0, "labelSpace")
}

// BatchSampleIDs reads the sample ids of the current voting batch.
func (g *Gateway) BatchSampleIDs(ctx context.Context) ([]string, error) {
	out, err := g.call(ctx, "currentBatchSampleIds")
	if err != nil {
		return nil, err
	}
	return unpackStrings(out, 0, "currentBatchSampleIds")
}

// IsSampleActive reads the per-sample open/closed flag.
func (g *Gateway) IsSampleActive(ctx context.Context, sampleID string) (bool, error) {
	out, err := g.call(ctx, "isSampleActive", sampleID)
	if err != nil {
		return false, err
	}
	return unpackBool(out, 0, "isSampleActive")
}

// BatchStatus reads the contract's batch summary.
func (g *Gateway) BatchStatus(ctx context.Context) (BatchStatus, error) {
	out, err := g.call(ctx, "batchStatus")
	if err != nil {
		return BatchStatus{}, err
	}
	round, err := unpackUint64(out, 0, "batchStatus.round")
	if err != nil {
		return BatchStatus{}, err
	}
	totalBig, err := unpackBig(out, 1, "batchStatus.totalSamples")
	if err != nil {
		return BatchStatus{}, err
	}
	total, err := safe.IntFromBig(totalBig)
	if err != nil {
		return BatchStatus{}, fmt.Errorf("batchStatus.totalSamples: %w", err)
	}
	active, err := unpackBool(out, 2, "batchStatus.active")
	if err != nil {
		return BatchStatus{}, err
	}
	return BatchStatus{Round: round, TotalSamples: total, Active: active}, nil
}

// ShouldEnd reads the contract-side project end flag and reason.
func (g *Gateway) ShouldEnd(ctx context.Context) (bool, string, error) {
	out, err := g.call(ctx, "shouldEnd")
	if err != nil {
		return false, "", err
	}
	end, err := unpackBool(out, 0, "shouldEnd.end")
	if err != nil {
		return false, "", err
	}
	reason, err := unpackString(out, 1, "shouldEnd.reason")
	if err != nil {
		return false, "", err
	}
	return end, reason, nil
}

// VotingHistory reads the finalized votes of one round.
func (g *Gateway) VotingHistory(ctx context.Context, round uint64) ([]FinalizedVote, error) {
	out, err := g.call(ctx, "votingHistory", new(big.Int).SetUint64(round))
	if err != nil {
		return nil, err
	}
	ids, err := unpackStrings(out, 0, "votingHistory.sampleIds")
	if err != nil {
		return nil, err
	}
	labels, err := unpackStrings(out, 1, "votingHistory.labels")
	if err != nil {
		return nil, err
	}
	timestamps, err := unpackBigs(out, 2, "votingHistory.timestamps")
	if err != nil {
		return nil, err
	}
	if len(labels) != len(ids) || len(timestamps) != len(ids) {
		return nil, &CallError{Op: "votingHistory", Err: fmt.Errorf("ragged history arrays: %d ids, %d labels, %d timestamps", len(ids), len(labels), len(timestamps))}
	}

	votes := make([]FinalizedVote, 0, len(ids))
	for i, id := range ids {
		sec, err := safe.Uint64FromBig(timestamps[i])
		if err != nil {
			return nil, fmt.Errorf("votingHistory timestamp for %s: %w", id, err)
		}
		votes = append(votes, FinalizedVote{
			SampleID:  id,
			Label:     labels[i],
			Timestamp: time.Unix(int64(sec), 0).UTC(),
		})
	}
	return votes, nil
}

// SampleVotes reads the voter breakdown for one sample and derives the
// label distribution from it.
func (g *Gateway) SampleVotes(ctx context.Context, sampleID string) (VoteDetail, error) {
	out, err := g.call(ctx, "sampleVotes", sampleID)
	if err != nil {
		return VoteDetail{}, err
	}
	voters, err := unpackAddresses(out, 0, "sampleVotes.voters")
	if err != nil {
		return VoteDetail{}, err
	}
	labels, err := unpackStrings(out, 1, "sampleVotes.labels")
	if err != nil {
		return VoteDetail{}, err
	}
	if len(voters) != len(labels) {
		return VoteDetail{}, &CallError{Op: "sampleVotes", Err: fmt.Errorf("ragged vote arrays: %d voters, %d labels", len(voters), len(labels))}
	}

	detail := VoteDetail{
		Votes:        make(map[string]string, len(voters)),
		Distribution: make(map[string]uint64, len(labels)),
	}
	for i, voter := range voters {
		detail.Votes[voter.Hex()] = labels[i]
		detail.Distribution[labels[i]]++
	}
	return detail, nil
}

// SubmitBatchVote submits labels for multiple samples as one transaction
// and waits for it to be mined. Contract reverts surface as typed
// VoteRejectedError values; an AlreadyVoted rejection is benign for
// retrying callers.
func (g *Gateway) SubmitBatchVote(ctx context.Context, sampleIDs, labels []string) (err error) {
	started := time.Now()
	defer func() {
		g.metrics.Observe("submit_batch_vote", err, started)
	}()

	if len(sampleIDs) != len(labels) {
		return &VoteRejectedError{
			Reason: RejectLengthMismatch,
			Detail: fmt.Sprintf("%d sample ids, %d labels", len(sampleIDs), len(labels)),
		}
	}
	if g.signer == nil {
		return errors.New("gateway has no signing key")
	}

	opts := *g.signer
	opts.Context = ctx
	tx, err := g.contract.Transact(&opts, "submitBatchVote", sampleIDs, labels)
	if err != nil {
		if rejected := classifyRevert(err); rejected != nil {
			return rejected
		}
		return &CallError{Op: "submitBatchVote", Err: err}
	}

	g.logger.Info("batch vote submitted",
		zap.String("tx", tx.Hash().Hex()),
		zap.Int("samples", len(sampleIDs)))

	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return &CallError{Op: "submitBatchVote.wait", Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &VoteRejectedError{Reason: RejectUnknown, Detail: "transaction reverted on chain"}
	}
	return nil
}

// StartNextRound triggers the contract-side iteration advance.
func (g *Gateway) StartNextRound(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		g.metrics.Observe("start_next_round", err, started)
	}()

	if g.signer == nil {
		return errors.New("gateway has no signing key")
	}
	opts := *g.signer
	opts.Context = ctx
	tx, err := g.contract.Transact(&opts, "startNextRound")
	if err != nil {
		if rejected := classifyRevert(err); rejected != nil {
			return rejected
		}
		return &CallError{Op: "startNextRound", Err: err}
	}
	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return &CallError{Op: "startNextRound.wait", Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &CallError{Op: "startNextRound", Err: errors.New("transaction reverted on chain")}
	}
	return nil
}

// Watch subscribes to one of the contract's event streams. Callers that
// cannot subscribe (HTTP-only endpoints, contracts without events) get
// the error back and are expected to fall back to polling.
func (g *Gateway) Watch(ctx context.Context, eventName string) (chan types.Log, event.Subscription, error) {
	return g.contract.WatchLogs(&bind.WatchOpts{Context: ctx}, eventName)
}

// UnpackEvent decodes a raw log into the given event struct.
func (g *Gateway) UnpackEvent(out any, eventName string, lg types.Log) error {
	return g.contract.UnpackLog(out, eventName, lg)
}

// call performs one rate-limited, bounded-retry contract read.
func (g *Gateway) call(ctx context.Context, method string, args ...any) (out []any, err error) {
	started := time.Now()
	defer func() {
		g.metrics.Observe(method, err, started)
	}()

	g.rl.Take()

	backoff := retry.WithMaxRetries(g.maxRetries, retry.NewExponential(g.retryBase))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		out = out[:0]
		if callErr := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); callErr != nil {
			return retry.RetryableError(callErr)
		}
		return nil
	})
	if err != nil {
		return nil, &CallError{Op: method, Err: err}
	}
	return out, nil
}

func unpackBig(out []any, idx int, what string) (*big.Int, error) {
	if idx >= len(out) {
		return nil, &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].(*big.Int)
	if !ok {
		return nil, &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}

func unpackUint64(out []any, idx int, what string) (uint64, error) {
	v, err := unpackBig(out, idx, what)
	if err != nil {
		return 0, err
	}
	u, err := safe.Uint64FromBig(v)
	if err != nil {
		return 0, &CallError{Op: what, Err: err}
	}
	return u, nil
}

func unpackBigs(out []any, idx int, what string) ([]*big.Int, error) {
	if idx >= len(out) {
		return nil, &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].([]*big.Int)
	if !ok {
		return nil, &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}

func unpackStrings(out []any, idx int, what string) ([]string, error) {
	if idx >= len(out) {
		return nil, &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].([]string)
	if !ok {
		return nil, &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}

func unpackString(out []any, idx int, what string) (string, error) {
	if idx >= len(out) {
		return "", &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].(string)
	if !ok {
		return "", &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}

func unpackBool(out []any, idx int, what string) (bool, error) {
	if idx >= len(out) {
		return false, &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].(bool)
	if !ok {
		return false, &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}

func unpackAddresses(out []any, idx int, what string) ([]common.Address, error) {
	if idx >= len(out) {
		return nil, &CallError{Op: what, Err: fmt.Errorf("missing output %d", idx)}
	}
	v, ok := out[idx].([]common.Address)
	if !ok {
		return nil, &CallError{Op: what, Err: fmt.Errorf("unexpected output type %T", out[idx])}
	}
	return v, nil
}
