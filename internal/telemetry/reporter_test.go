package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinworks/adwidget/internal/domain"
)

type memorySink struct {
	mu     sync.Mutex
	name   string
	events []domain.InteractionEvent
	err    error
}

func (s *memorySink) Name() string { return s.name }

func (s *memorySink) Deliver(_ context.Context, ev domain.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) delivered() []domain.InteractionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.InteractionEvent, len(s.events))
	copy(out, s.events)
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReporter_DeliversToAllSinks(t *testing.T) {
	primary := &memorySink{name: "primary"}
	mirror := &memorySink{name: "mirror"}
	r := NewReporter(8, discardLogger(), primary, mirror)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	r.View(42, false)
	r.RewardClaim(42, 5, false)

	require.Eventually(t, func() bool {
		return len(primary.delivered()) == 2 && len(mirror.delivered()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	events := primary.delivered()
	assert.Equal(t, domain.InteractionView, events[0].Type)
	assert.Equal(t, int64(42), events[0].AdID)
	assert.Equal(t, domain.InteractionRewardClaimed, events[1].Type)
	assert.Equal(t, int64(5), events[1].CreditsEarned)
}

func TestReporter_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	// No dispatcher running, so the queue only drains on Start.
	r := NewReporter(2, discardLogger(), &memorySink{name: "sink"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			r.View(int64(i), true)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Report blocked on a full queue")
	}
	assert.Equal(t, int64(3), r.Dropped())
}

func TestReporter_SinkFailureDoesNotStopOthers(t *testing.T) {
	broken := &memorySink{name: "broken", err: errors.New("endpoint down")}
	healthy := &memorySink{name: "healthy"}
	r := NewReporter(8, discardLogger(), broken, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	r.Skip(9, true)

	require.Eventually(t, func() bool {
		return len(healthy.delivered()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, broken.delivered())
}

func TestReporter_OpenCircuitSkipsSink(t *testing.T) {
	broken := &memorySink{name: "broken", err: errors.New("endpoint down")}
	r := NewReporter(16, discardLogger(), broken)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	// Five failures trip the breaker; later events skip delivery.
	for i := 0; i < 7; i++ {
		r.View(int64(i), true)
	}

	require.Eventually(t, func() bool {
		return len(r.queue) == 0
	}, 2*time.Second, 10*time.Millisecond)

	broken.mu.Lock()
	broken.err = nil
	broken.mu.Unlock()

	r.View(99, true)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, broken.delivered(), "open circuit drops events until the reset timeout")
}

func TestReporter_StopsOnContextCancel(t *testing.T) {
	sink := &memorySink{name: "sink"}
	r := NewReporter(8, discardLogger(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		r.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop on context cancel")
	}
}
