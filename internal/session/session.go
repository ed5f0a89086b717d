// Package session drives the AL iteration lifecycle for one project:
// sample generation, batch voting, completion reconciliation and label
// aggregation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/clock"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/compute"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/events"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/pubsub"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/safe"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/workerpool"
)

// Config tunes a session's background loops.
type Config struct {
	PollInterval     time.Duration
	EndCheckInterval time.Duration
	VoteWorkers      int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.EndCheckInterval <= 0 {
		c.EndCheckInterval = defaultEndCheckInterval
	}
	if c.VoteWorkers <= 0 {
		c.VoteWorkers = defaultVoteWorkers
	}
	return c
}

// Session owns the state machine for one project. All state mutation
// funnels through one mutex; everything handed outward is a deep
// snapshot. Background loops (polling fallback, periodic end check) and
// event subscriptions all feed the same transition entry points, so a
// missed or duplicated event never corrupts the view: the reconciler
// re-derives it from the chain on every poll.
type Session struct {
	logger     *zap.Logger
	project    model.Project
	chain      ChainGateway
	compute    ComputeGateway
	fallback   SampleGenerator
	reconciler Reconciler
	events     EventSource
	metrics    Metrics
	sleep      func(context.Context, time.Duration) error
	cfg        Config

	stateChanged *pubsub.Topic[model.SessionState]
	pollSignal   chan struct{}

	mu    sync.Mutex
	state model.SessionState
	// records holds finalized votes observed via events, by round then
	// sample id. Merged with the chain's voting history at aggregation.
	records map[uint64]map[string]model.VotingRecord

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	subs      []*pubsub.Subscription
	closeOnce sync.Once
}

func newSession(
	project model.Project,
	chainGW ChainGateway,
	computeGW ComputeGateway,
	fallback SampleGenerator,
	reconciler Reconciler,
	eventSource EventSource,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) *Session {
	logger = logger.With(zap.String("project", project.ID))
	return &Session{
		logger:     logger,
		project:    project,
		chain:      chainGW,
		compute:    computeGW,
		fallback:   fallback,
		reconciler: reconciler,
		events:     eventSource,
		metrics:    metrics,
		sleep:      clock.SleepWithContext,
		cfg:        cfg.withDefaults(),
		stateChanged: pubsub.NewTopic[model.SessionState](
			logger.Named("stateChanged"),
		),
		pollSignal: make(chan struct{}, 1),
		records:    make(map[uint64]map[string]model.VotingRecord),
		state: model.SessionState{
			ProjectID: project.ID,
			IsActive:  true,
			Phase:     model.PhaseIdle,
			Round:     project.CurrentRound,
			UpdatedAt: time.Now().UTC(),
		},
	}
}

// Start launches the polling fallback and the periodic end-condition
// check, and attaches the contract event subscriptions.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.subscribeEvents()

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.pollLoop(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.endCheckLoop(ctx)
	}()
}

// State returns a deep snapshot of the current session state.
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// StateChanged is the topic carrying a full state snapshot on every
// transition.
func (s *Session) StateChanged() *pubsub.Topic[model.SessionState] {
	return s.stateChanged
}

// EventsLive reports whether contract event subscriptions are feeding
// this session or polling is the only signal source.
func (s *Session) EventsLive() bool {
	return s.events != nil && s.events.Live()
}

// StartIteration begins the next AL round: reads the authoritative
// round from the chain, obtains query samples from the compute service
// (or the local fallback when it is unreachable) and leaves the session
// in generating_samples with the batch ready for votes. Rejected while
// another iteration is in flight.
func (s *Session) StartIteration(ctx context.Context, configOverride map[string]any) (model.SessionState, error) {
	started := time.Now()
	var err error
	defer func() {
		s.metrics.ObserveIteration(err, started)
	}()

	snap, ok := s.transitionFrom(
		[]model.Phase{model.PhaseIdle, model.PhaseCompleted},
		model.PhaseGeneratingSamples,
		func(st *model.SessionState) {
			st.Error = ""
			st.BatchProgress = nil
			st.QuerySamples = nil
		},
	)
	if !ok {
		if !snap.IsActive || snap.ShouldEnd || snap.Phase == model.PhaseEnding {
			err = ErrSessionEnded
		} else {
			err = ErrIterationInFlight
		}
		return snap, err
	}

	round, roundErr := s.chain.CurrentRound(ctx)
	if roundErr != nil {
		// Recoverable: give the phase back so the caller can retry.
		s.transitionFrom([]model.Phase{model.PhaseGeneratingSamples}, model.PhaseIdle, nil)
		err = fmt.Errorf("read current round: %w", roundErr)
		return s.State(), err
	}
	if s.project.MaxRounds > 0 && round > s.project.MaxRounds {
		s.beginEnding(model.EndReasonMaxRounds, "configured max rounds reached")
		return s.State(), nil
	}

	samples, genErr := s.generateSamples(ctx, round, configOverride)
	if genErr != nil {
		if errors.Is(genErr, compute.ErrPoolExhausted) {
			s.beginEnding(model.EndReasonPoolExhausted, "unlabeled pool exhausted")
			return s.State(), nil
		}
		s.fail("generate query samples", genErr)
		err = genErr
		return s.State(), err
	}

	snap, ok = s.transitionFrom(
		[]model.Phase{model.PhaseGeneratingSamples},
		model.PhaseGeneratingSamples,
		func(st *model.SessionState) {
			st.Round = round
			st.QuerySamples = samples
		},
	)
	if !ok {
		// Ended concurrently; the generated batch is discarded.
		return snap, nil
	}
	s.logger.Info("query samples ready",
		zap.Uint64("round", round),
		zap.Int("samples", len(samples)),
		zap.String("source", string(sampleSource(samples))))
	return snap, nil
}

// SubmitVotes submits the caller's labels for the current batch as one
// transaction and moves the session to voting. A contract rejection is
// surfaced as-is with the phase unchanged so the caller may retry; an
// already-voted rejection is treated as success.
func (s *Session) SubmitVotes(ctx context.Context, votes map[string]string) (model.SessionState, error) {
	if len(votes) == 0 {
		return s.State(), errors.New("no votes supplied")
	}

	s.mu.Lock()
	if !s.state.IsActive {
		snap := s.state.Clone()
		s.mu.Unlock()
		return snap, ErrSessionEnded
	}
	if s.state.Phase != model.PhaseGeneratingSamples || len(s.state.QuerySamples) == 0 {
		snap := s.state.Clone()
		s.mu.Unlock()
		return snap, ErrNoPendingBatch
	}
	batch := make([]string, 0, len(s.state.QuerySamples))
	for _, sample := range s.state.QuerySamples {
		batch = append(batch, sample.SampleID)
	}
	s.mu.Unlock()

	ids, labels, err := s.orderVotes(batch, votes)
	if err != nil {
		return s.State(), err
	}

	if voteErr := s.chain.SubmitBatchVote(ctx, ids, labels); voteErr != nil {
		if rej, ok := chain.AsVoteRejected(voteErr); ok && rej.Benign() {
			s.logger.Info("batch vote already recorded on chain",
				zap.String("reason", string(rej.Reason)))
		} else {
			return s.State(), fmt.Errorf("submit batch vote: %w", voteErr)
		}
	}

	progress, snapErr := s.reconciler.Snapshot(ctx)
	if snapErr != nil {
		s.logger.Warn("post-vote snapshot failed, polling will recover", zap.Error(snapErr))
	}
	snap, ok := s.transitionFrom(
		[]model.Phase{model.PhaseGeneratingSamples},
		model.PhaseVoting,
		func(st *model.SessionState) {
			if snapErr == nil {
				p := progress.Clone()
				st.BatchProgress = &p
				st.Round = progress.Round
			}
		},
	)
	if !ok {
		return snap, ErrSessionEnded
	}
	s.kickPoll()
	return snap, nil
}

// End terminates the session on user request: best-effort final
// training, then full teardown. Idempotent.
func (s *Session) End() model.SessionState {
	s.beginEnding(model.EndReasonUserRequested, "session ended by user")
	s.Close()
	return s.State()
}

// Close stops both loops and detaches event subscriptions. A vote
// transaction in flight on a caller's context is not aborted; only
// background progression stops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		for _, sub := range s.subs {
			sub.Unsubscribe()
		}
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
		s.stateChanged.Close()
	})
}

func (s *Session) subscribeEvents() {
	if s.events == nil {
		return
	}
	s.subs = append(s.subs,
		s.events.Started().Subscribe(func(ev events.VotingSessionStarted) {
			s.logger.Debug("voting session opened", zap.String("sample", ev.SampleId))
			s.kickPoll()
		}),
		s.events.Ended().Subscribe(s.onVotingEnded),
		s.events.BatchCompleted().Subscribe(func(ev events.ALBatchCompleted) {
			// Never trusted as-is; the poll re-derives completion from
			// a fresh snapshot before acting on it.
			s.logger.Debug("contract reported batch completion")
			s.kickPoll()
		}),
		s.events.EndTriggered().Subscribe(func(ev events.ProjectEndTriggered) {
			s.beginEnding(model.EndReasonChainTriggered, ev.Reason)
		}),
	)
}

// onVotingEnded applies one sample finalization. Duplicate deliveries
// are dropped by the reconciler's idempotent completion set.
func (s *Session) onVotingEnded(ev events.VotingSessionEnded) {
	var round uint64
	if ev.Round != nil {
		round = ev.Round.Uint64()
	}
	if !s.reconciler.ApplyCompletion(round, ev.SampleId) {
		return
	}

	s.mu.Lock()
	byRound, ok := s.records[round]
	if !ok {
		byRound = make(map[string]model.VotingRecord)
		s.records[round] = byRound
	}
	byRound[ev.SampleId] = model.VotingRecord{
		SampleID:         ev.SampleId,
		FinalLabel:       ev.FinalLabel,
		Round:            round,
		Timestamp:        time.Now().UTC(),
		ConsensusReached: true,
	}
	s.mu.Unlock()

	s.logger.Debug("sample finalized",
		zap.String("sample", ev.SampleId),
		zap.String("label", ev.FinalLabel),
		zap.Uint64("round", round))
	s.kickPoll()
}

// pollLoop is the fallback of record: even with no event delivered at
// all, every batch eventually completes through here.
func (s *Session) pollLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if _, err := clock.WaitOrSignal(ctx, s.cfg.PollInterval, s.pollSignal); err != nil {
			return
		}
		s.pollOnce(ctx)
	}
}

func (s *Session) pollOnce(ctx context.Context) {
	s.mu.Lock()
	active := s.state.IsActive
	phase := s.state.Phase
	round := s.state.Round
	var pending *model.BatchProgress
	if s.state.BatchProgress != nil {
		p := s.state.BatchProgress.Clone()
		pending = &p
	}
	s.mu.Unlock()
	if !active {
		return
	}
	if phase == model.PhaseAggregating {
		// A label push that found compute unreachable is retried here.
		if pending != nil {
			s.finishAggregation(ctx, *pending)
		}
		return
	}
	if phase != model.PhaseVoting {
		return
	}

	progress, err := s.reconciler.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("batch snapshot failed, retrying next poll", zap.Error(err))
		return
	}
	if progress.Round != round {
		s.logger.Warn("chain round differs from session round, adopting chain view",
			zap.Uint64("session_round", round),
			zap.Uint64("chain_round", progress.Round))
	}

	if progress.Complete() {
		s.aggregate(ctx, progress)
		return
	}

	s.mu.Lock()
	prev := s.state.BatchProgress
	changed := prev == nil ||
		prev.Round != progress.Round ||
		prev.CompletedSamples != progress.CompletedSamples ||
		prev.TotalSamples != progress.TotalSamples ||
		prev.BatchActive != progress.BatchActive
	s.mu.Unlock()
	if changed {
		s.transitionFrom([]model.Phase{model.PhaseVoting}, model.PhaseVoting,
			func(st *model.SessionState) {
				p := progress.Clone()
				st.BatchProgress = &p
				st.Round = progress.Round
			})
	}
}

// aggregate collects finalized labels for a truly complete batch,
// pushes them to the compute service and completes the round. Exactly
// one caller wins the voting to aggregating transition; late polls and
// duplicate events lose the race and return.
func (s *Session) aggregate(ctx context.Context, progress model.BatchProgress) {
	_, ok := s.transitionFrom([]model.Phase{model.PhaseVoting}, model.PhaseAggregating,
		func(st *model.SessionState) {
			p := progress.Clone()
			st.BatchProgress = &p
			st.Round = progress.Round
		})
	if !ok {
		return
	}
	s.finishAggregation(ctx, progress)
}

// finishAggregation pushes the collected labels and completes the
// round. An unreachable compute service keeps the session in
// aggregating with its records intact; the poll loop retries the push
// until it lands or the session ends.
func (s *Session) finishAggregation(ctx context.Context, progress model.BatchProgress) {
	labeled := s.collectLabels(ctx, progress)
	ready, err := s.compute.SubmitLabels(ctx, s.project.ID, progress.Round, labeled)
	if err != nil {
		if errors.Is(err, compute.ErrUnavailable) {
			s.logger.Warn("compute unreachable, retrying label push next poll",
				zap.Error(err))
			return
		}
		s.fail("submit labels", err)
		return
	}

	s.reconciler.Forget(progress.Round)
	s.mu.Lock()
	delete(s.records, progress.Round)
	s.mu.Unlock()

	s.transitionFrom([]model.Phase{model.PhaseAggregating}, model.PhaseCompleted,
		func(st *model.SessionState) {
			st.BatchProgress = nil
			st.QuerySamples = nil
		})
	s.logger.Info("round completed",
		zap.Uint64("round", progress.Round),
		zap.Int("labeled", len(labeled)))

	if s.project.MaxRounds > 0 && progress.Round >= s.project.MaxRounds {
		s.beginEnding(model.EndReasonMaxRounds, "configured max rounds reached")
		return
	}
	if ready {
		if nextErr := s.chain.StartNextRound(ctx); nextErr != nil {
			s.logger.Warn("advancing contract round failed, next iteration will re-read",
				zap.Error(nextErr))
		}
	}
}

// collectLabels builds the submit_labels payload for every sample id in
// the batch. Finalized labels come from the chain's voting history
// merged with event-observed records; a sample with neither gets the
// fallback label, flagged so the engine can filter it downstream.
func (s *Session) collectLabels(ctx context.Context, progress model.BatchProgress) []model.LabeledSample {
	final := make(map[string]model.VotingRecord, len(progress.SampleIDs))
	history, err := s.chain.VotingHistory(ctx, progress.Round)
	if err != nil {
		s.logger.Warn("voting history read failed, relying on event records", zap.Error(err))
	}
	for _, vote := range history {
		final[vote.SampleID] = model.VotingRecord{
			SampleID:         vote.SampleID,
			FinalLabel:       vote.Label,
			Round:            progress.Round,
			Timestamp:        vote.Timestamp,
			ConsensusReached: true,
		}
	}

	s.mu.Lock()
	for id, rec := range s.records[progress.Round] {
		if _, ok := final[id]; !ok {
			final[id] = rec
		}
	}
	samplesByID := make(map[string]model.Sample, len(s.state.QuerySamples))
	for _, sample := range s.state.QuerySamples {
		samplesByID[sample.SampleID] = sample
	}
	s.mu.Unlock()

	finalized := make([]string, 0, len(final))
	for _, id := range progress.SampleIDs {
		if _, ok := final[id]; ok {
			finalized = append(finalized, id)
		}
	}
	details, detailErrs := workerpool.Map(ctx, s.cfg.VoteWorkers, finalized,
		func(ctx context.Context, id string) (chain.VoteDetail, error) {
			return s.chain.SampleVotes(ctx, id)
		})
	for i, id := range finalized {
		if detailErrs[i] != nil {
			s.logger.Debug("voter breakdown unavailable",
				zap.String("sample", id), zap.Error(detailErrs[i]))
			continue
		}
		rec := final[id]
		rec.Votes = details[i].Votes
		rec.Distribution = details[i].Distribution
		final[id] = rec
	}

	labeled := make([]model.LabeledSample, 0, len(progress.SampleIDs))
	for _, id := range progress.SampleIDs {
		sample := samplesByID[id]
		label := model.UnknownLabel
		consensus := false
		if rec, ok := final[id]; ok {
			label = rec.FinalLabel
			consensus = rec.ConsensusReached
		} else {
			s.logger.Warn("no finalized voting record, assigning fallback label",
				zap.String("sample", id), zap.Uint64("round", progress.Round))
		}
		labeled = append(labeled, model.LabeledSample{
			SampleID:      id,
			OriginalIndex: sample.OriginalIndex,
			Features:      sample.Features,
			Label:         label,
			Consensus:     consensus,
		})
	}
	return labeled
}

func (s *Session) endCheckLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.sleep(ctx, s.cfg.EndCheckInterval); err != nil {
			return
		}
		s.checkEndConditions(ctx)
	}
}

func (s *Session) checkEndConditions(ctx context.Context) {
	s.mu.Lock()
	active := s.state.IsActive && s.state.Phase != model.PhaseEnding
	round := s.state.Round
	s.mu.Unlock()
	if !active {
		return
	}

	should, reason, err := s.chain.ShouldEnd(ctx)
	if err != nil {
		s.logger.Warn("end condition check failed, retrying next cycle", zap.Error(err))
		return
	}
	if should {
		s.beginEnding(model.EndReasonChainTriggered, reason)
		return
	}
	if s.project.MaxRounds > 0 && round > s.project.MaxRounds {
		s.beginEnding(model.EndReasonMaxRounds, "configured max rounds reached")
	}
}

// beginEnding moves the session to its terminal ending phase and fires
// the best-effort final training request. First caller wins; ending is
// terminal and requires a new session to resume.
func (s *Session) beginEnding(reason model.EndReason, detail string) {
	// A single guarded transition claims the ending phase, so racing
	// triggers (chain event plus the end-check loop) cannot both run
	// the teardown.
	snap, ok := s.transitionFrom(
		[]model.Phase{
			model.PhaseIdle,
			model.PhaseGeneratingSamples,
			model.PhaseVoting,
			model.PhaseAggregating,
			model.PhaseCompleted,
		},
		model.PhaseEnding,
		func(st *model.SessionState) {
			st.ShouldEnd = true
			st.EndReason = reason
		})
	if !ok {
		return
	}
	round := snap.Round

	s.logger.Info("project end condition met",
		zap.String("reason", string(reason)),
		zap.String("detail", detail))

	// Detached from the session context so teardown does not abort it.
	ftCtx, cancel := context.WithTimeout(context.Background(), finalTrainingTimeout)
	defer cancel()
	if err := s.compute.FinalTraining(ftCtx, s.project.ID, round); err != nil {
		s.logger.Warn("final training request failed", zap.Error(err))
	}

	s.transition(model.PhaseEnding, func(st *model.SessionState) {
		st.IsActive = false
	})
}

// fail moves the session to the terminal error phase.
func (s *Session) fail(op string, err error) {
	s.logger.Error("irrecoverable orchestration failure",
		zap.String("op", op), zap.Error(err))
	s.transition(model.PhaseError, func(st *model.SessionState) {
		st.IsActive = false
		st.Error = fmt.Sprintf("%s: %v", op, err)
	})
}

func (s *Session) generateSamples(ctx context.Context, round uint64, override map[string]any) ([]model.Sample, error) {
	batchSize, err := safe.Int(s.project.QueryBatchSize)
	if err != nil {
		return nil, fmt.Errorf("query batch size: %w", err)
	}
	if healthErr := s.compute.Health(ctx); healthErr != nil {
		s.logger.Warn("compute service unavailable, generating simulated samples",
			zap.Error(healthErr))
		return s.fallback.Generate(round, batchSize), nil
	}

	samples, err := s.compute.StartIteration(ctx, s.project.ID, round, override)
	if err != nil {
		if errors.Is(err, compute.ErrPoolExhausted) {
			return nil, err
		}
		if errors.Is(err, compute.ErrUnavailable) {
			s.logger.Warn("compute iteration failed, generating simulated samples",
				zap.Error(err))
			return s.fallback.Generate(round, batchSize), nil
		}
		return nil, fmt.Errorf("start iteration round %d: %w", round, err)
	}
	return samples, nil
}

// orderVotes validates the vote map against the current batch and the
// project label space, returning parallel id and label slices in batch
// order.
func (s *Session) orderVotes(batch []string, votes map[string]string) ([]string, []string, error) {
	var invalid *multierror.Error

	known := make(map[string]struct{}, len(batch))
	for _, id := range batch {
		known[id] = struct{}{}
	}
	for id := range votes {
		if _, ok := known[id]; !ok {
			invalid = multierror.Append(invalid, fmt.Errorf("%w: %s", ErrUnknownSample, id))
		}
	}
	if len(s.project.LabelSpace) > 0 {
		allowed := make(map[string]struct{}, len(s.project.LabelSpace))
		for _, label := range s.project.LabelSpace {
			allowed[label] = struct{}{}
		}
		for id, label := range votes {
			if _, ok := allowed[label]; !ok {
				invalid = multierror.Append(invalid, fmt.Errorf("%w: %q for sample %s", ErrLabelNotAllowed, label, id))
			}
		}
	}
	if err := invalid.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(votes))
	labels := make([]string, 0, len(votes))
	for _, id := range batch {
		if label, ok := votes[id]; ok {
			ids = append(ids, id)
			labels = append(labels, label)
		}
	}
	return ids, labels, nil
}

// transitionFrom performs a guarded phase transition. With a nil
// allowed list the transition is unconditional. The returned snapshot
// reflects post-transition state when ok, pre-transition state when the
// guard rejected it.
func (s *Session) transitionFrom(allowed []model.Phase, to model.Phase, mutate func(*model.SessionState)) (model.SessionState, bool) {
	s.mu.Lock()
	from := s.state.Phase
	if allowed != nil {
		ok := false
		for _, p := range allowed {
			if from == p {
				ok = true
				break
			}
		}
		if !ok {
			snap := s.state.Clone()
			s.mu.Unlock()
			return snap, false
		}
	}
	s.state.Phase = to
	if mutate != nil {
		mutate(&s.state)
	}
	s.state.UpdatedAt = time.Now().UTC()
	snap := s.state.Clone()
	s.mu.Unlock()

	if from != to {
		s.metrics.ObserveTransition(from, to)
		s.logger.Info("phase transition",
			zap.String("from", string(from)), zap.String("to", string(to)))
	}
	s.stateChanged.Publish(snap)
	return snap, true
}

func (s *Session) transition(to model.Phase, mutate func(*model.SessionState)) model.SessionState {
	snap, _ := s.transitionFrom(nil, to, mutate)
	return snap
}

// kickPoll wakes the polling loop without waiting for the next tick.
func (s *Session) kickPoll() {
	select {
	case s.pollSignal <- struct{}{}:
	default:
	}
}

func sampleSource(samples []model.Sample) model.SampleSource {
	if len(samples) == 0 {
		return model.SourceALEngine
	}
	return samples[0].Source
}
