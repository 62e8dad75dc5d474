package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		assert.True(t, b.Allow())
		b.RecordFailure()
	}
	assert.True(t, b.Allow(), "still closed below the threshold")

	b.RecordFailure()
	assert.False(t, b.Allow(), "third consecutive failure opens the circuit")
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()

	assert.True(t, b.Allow(), "success resets the consecutive failure count")
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	b := NewBreaker(1, 20*time.Millisecond)

	b.RecordFailure()
	assert.False(t, b.Allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, b.Allow(), "reset timeout allows one probe")
	assert.False(t, b.Allow(), "only one probe at a time in half-open")

	b.RecordSuccess()
	assert.True(t, b.Allow(), "successful probe closes the circuit")
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b := NewBreaker(1, 20*time.Millisecond)

	b.RecordFailure()
	time.Sleep(30 * time.Millisecond)
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow(), "failed probe reopens immediately")
}
