// Package telemetry delivers ad interaction events (view, skip,
// completion, reward_claimed) as best-effort, fire-and-forget messages.
// Events go onto a bounded queue; a dispatcher goroutine drains it into
// one or more sinks. Delivery failures are logged and dropped, never
// surfaced to the placement that emitted them.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coinworks/adwidget/internal/domain"
)

// Sink delivers one event to a destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev domain.InteractionEvent) error
}

// Reporter owns the outbound interaction queue.
type Reporter struct {
	queue  chan domain.InteractionEvent
	sinks  []Sink
	logger *slog.Logger

	breakers map[string]*Breaker

	startOnce sync.Once
	done      chan struct{}

	mu      sync.Mutex
	dropped int64
}

// NewReporter creates a reporter with a bounded queue. Events offered
// while the queue is full are dropped (and counted) rather than
// blocking the caller.
func NewReporter(queueSize int, logger *slog.Logger, sinks ...Sink) *Reporter {
	breakers := make(map[string]*Breaker, len(sinks))
	for _, s := range sinks {
		breakers[s.Name()] = NewBreaker(5, 30*time.Second)
	}
	return &Reporter{
		queue:    make(chan domain.InteractionEvent, queueSize),
		sinks:    sinks,
		logger:   logger,
		breakers: breakers,
		done:     make(chan struct{}),
	}
}

// Start launches the dispatcher goroutine. It stops when ctx is
// cancelled; events still queued at that point are dropped.
func (r *Reporter) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		go func() {
			defer close(r.done)
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-r.queue:
					r.dispatch(ctx, ev)
				}
			}
		}()
	})
}

// Wait blocks until the dispatcher has stopped.
func (r *Reporter) Wait() { <-r.done }

// Report enqueues an event. Never blocks; a full queue drops the event.
func (r *Reporter) Report(ev domain.InteractionEvent) {
	select {
	case r.queue <- ev:
	default:
		r.mu.Lock()
		r.dropped++
		n := r.dropped
		r.mu.Unlock()
		r.logger.Warn("telemetry queue full, event dropped",
			"ad_id", ev.AdID, "type", ev.Type, "total_dropped", n)
	}
}

// Dropped returns how many events were discarded at enqueue time.
func (r *Reporter) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *Reporter) dispatch(ctx context.Context, ev domain.InteractionEvent) {
	for _, sink := range r.sinks {
		br := r.breakers[sink.Name()]
		if !br.Allow() {
			r.logger.Debug("telemetry sink circuit open, event dropped",
				"sink", sink.Name(), "ad_id", ev.AdID, "type", ev.Type)
			continue
		}
		if err := sink.Deliver(ctx, ev); err != nil {
			br.RecordFailure()
			r.logger.Error("telemetry delivery failed",
				"sink", sink.Name(), "ad_id", ev.AdID, "type", ev.Type, "error", err)
			continue
		}
		br.RecordSuccess()
	}
}

// Convenience emitters matching the widget's interaction vocabulary.

func (r *Reporter) View(adID int64, guest bool) {
	r.Report(domain.NewInteraction(adID, domain.InteractionView, 0, guest))
}

func (r *Reporter) Skip(adID int64, guest bool) {
	r.Report(domain.NewInteraction(adID, domain.InteractionSkip, 0, guest))
}

func (r *Reporter) Completion(adID int64, guest bool) {
	r.Report(domain.NewInteraction(adID, domain.InteractionCompletion, 0, guest))
}

func (r *Reporter) RewardClaim(adID, credits int64, guest bool) {
	r.Report(domain.NewInteraction(adID, domain.InteractionRewardClaimed, credits, guest))
}
