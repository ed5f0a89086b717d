// Package events bridges contract log subscriptions into typed
// in-process notifications.
package events

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
	"github.com/zephyr-dassouli/dal-orchestrator/pkg/pubsub"
)

// Bridge subscribes to the project contract's events and republishes
// them as typed values on per-event topics. Subscriptions are an
// accelerator only: when the RPC endpoint cannot serve log filters the
// bridge degrades to pending mode and the polling loop carries the
// session on its own. Deliveries may be duplicated or arrive out of
// order; consumers apply them idempotently.
type Bridge struct {
	watcher LogWatcher
	metrics Metrics
	logger  *zap.Logger

	started        *pubsub.Topic[VotingSessionStarted]
	ended          *pubsub.Topic[VotingSessionEnded]
	batchCompleted *pubsub.Topic[ALBatchCompleted]
	endTriggered   *pubsub.Topic[ProjectEndTriggered]

	mu     sync.Mutex
	subs   []event.Subscription
	live   bool
	closed bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a Bridge. Call Start to open the subscriptions.
func New(watcher LogWatcher, metrics Metrics, logger *zap.Logger) (*Bridge, error) {
	if watcher == nil {
		return nil, errors.New("log watcher is required")
	}
	if metrics == nil {
		return nil, errors.New("event metrics is required")
	}
	return &Bridge{
		watcher:        watcher,
		metrics:        metrics,
		logger:         logger,
		started:        pubsub.NewTopic[VotingSessionStarted](logger),
		ended:          pubsub.NewTopic[VotingSessionEnded](logger),
		batchCompleted: pubsub.NewTopic[ALBatchCompleted](logger),
		endTriggered:   pubsub.NewTopic[ProjectEndTriggered](logger),
	}, nil
}

// Started is the topic for sample voting-session openings.
func (b *Bridge) Started() *pubsub.Topic[VotingSessionStarted] { return b.started }

// Ended is the topic for sample finalizations.
func (b *Bridge) Ended() *pubsub.Topic[VotingSessionEnded] { return b.ended }

// BatchCompleted is the topic for contract-reported batch completion.
func (b *Bridge) BatchCompleted() *pubsub.Topic[ALBatchCompleted] { return b.batchCompleted }

// EndTriggered is the topic for contract-raised end conditions.
func (b *Bridge) EndTriggered() *pubsub.Topic[ProjectEndTriggered] { return b.endTriggered }

// Live reports whether log subscriptions are currently feeding the
// topics. False means pending mode: polling is the only signal source.
func (b *Bridge) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Start opens subscriptions for all contract events. A subscription
// failure is not an error: the bridge tears down whatever it opened,
// enters pending mode and leaves the polling loop in charge.
func (b *Bridge) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		return
	}
	b.cancel = cancel
	b.mu.Unlock()

	watchers := []struct {
		name   string
		attach func() (event.Subscription, error)
	}{
		{chain.EventVotingSessionStarted, func() (event.Subscription, error) {
			return watchEvent(b, ctx, chain.EventVotingSessionStarted, b.started)
		}},
		{chain.EventVotingSessionEnded, func() (event.Subscription, error) {
			return watchEvent(b, ctx, chain.EventVotingSessionEnded, b.ended)
		}},
		{chain.EventALBatchCompleted, func() (event.Subscription, error) {
			return watchEvent(b, ctx, chain.EventALBatchCompleted, b.batchCompleted)
		}},
		{chain.EventProjectEndTriggered, func() (event.Subscription, error) {
			return watchEvent(b, ctx, chain.EventProjectEndTriggered, b.endTriggered)
		}},
	}

	subs := make([]event.Subscription, 0, len(watchers))
	for _, w := range watchers {
		sub, err := w.attach()
		if err != nil {
			b.logger.Info("event subscription unavailable, staying on polling",
				zap.String("event", w.name), zap.Error(err))
			for _, opened := range subs {
				opened.Unsubscribe()
			}
			cancel()
			return
		}
		subs = append(subs, sub)
	}

	b.mu.Lock()
	b.subs = subs
	b.live = true
	b.mu.Unlock()
	b.logger.Info("contract event subscriptions established")
}

// degrade drops to pending mode after a live subscription fails.
func (b *Bridge) degrade(eventName string, err error) {
	b.mu.Lock()
	wasLive := b.live
	b.live = false
	b.mu.Unlock()
	if wasLive {
		b.logger.Warn("event subscription lost, falling back to polling",
			zap.String("event", eventName), zap.Error(err))
	}
}

// Close tears down all subscriptions and the topics. Safe to call
// whether or not Start succeeded.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.live = false
	cancel := b.cancel
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	b.wg.Wait()

	b.started.Close()
	b.ended.Close()
	b.batchCompleted.Close()
	b.endTriggered.Close()
}

// watchEvent opens one subscription and pumps its logs onto the topic
// until the context ends or the subscription errors out.
func watchEvent[T any](b *Bridge, ctx context.Context, eventName string, topic *pubsub.Topic[T]) (event.Subscription, error) {
	logs, sub, err := b.watcher.Watch(ctx, eventName)
	if err != nil {
		return nil, err
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case subErr := <-sub.Err():
				if subErr != nil {
					b.degrade(eventName, subErr)
				}
				return
			case lg, ok := <-logs:
				if !ok {
					return
				}
				var ev T
				if unpackErr := b.watcher.UnpackEvent(&ev, eventName, lg); unpackErr != nil {
					b.metrics.ObserveDelivery(eventName, unpackErr)
					b.logger.Warn("dropping undecodable contract log",
						zap.String("event", eventName),
						zap.Uint64("block", lg.BlockNumber),
						zap.Error(unpackErr))
					continue
				}
				b.metrics.ObserveDelivery(eventName, nil)
				topic.Publish(ev)
			}
		}
	}()
	return sub, nil
}
