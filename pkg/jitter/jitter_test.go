package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_WithinBounds(t *testing.T) {
	base := 100 * time.Millisecond

	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestDuration_ZeroFactor(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, Duration(base, 0))
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	base := 100 * time.Millisecond

	first := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(42)))
	second := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(42)))

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, base)
	assert.LessOrEqual(t, first, base+base/2)
}

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second}, // ограничено максимумом
		{10, time.Second},
	}
	for _, tt := range tests {
		d := ExponentialBackoff(base, max, tt.attempt, 0)
		assert.Equal(t, tt.want, d, "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	for i := 0; i < 100; i++ {
		d := ExponentialBackoff(base, max, 2, DefaultJitter)
		assert.GreaterOrEqual(t, d, 400*time.Millisecond)
		assert.LessOrEqual(t, d, 600*time.Millisecond)
	}
}
