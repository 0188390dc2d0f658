package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewRandomSampler(42, 7)
	b := NewRandomSampler(42, 7)
	other := NewRandomSampler(42, 8)

	same := true
	for i := 0; i < 100; i++ {
		x, y, z := a.Get1D(), b.Get1D(), other.Get1D()
		require.Equal(t, x, y, "same seed must yield the same stream")
		if x != z {
			same = false
		}
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
	assert.False(t, same, "different task index should yield a different stream")
}

func TestUnitBallSamplers(t *testing.T) {
	const n = 20000
	sampler := NewRandomSampler(3)

	tests := []struct {
		name   string
		sample func() Vec3
	}{
		{"Rejection", func() Vec3 { return RandomInUnitSphere(sampler) }},
		{"InverseCDF", func() Vec3 { return SamplePointInUnitSphere(sampler.Get3D()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sumSq float64
			var mean Vec3
			for i := 0; i < n; i++ {
				p := tt.sample()
				require.LessOrEqual(t, p.LengthSquared(), 1.0)
				sumSq += p.LengthSquared()
				mean = mean.Add(p)
			}
			mean = mean.Divide(n)

			// Uniform over the ball: E[|p|²] = 3/5 and E[p] = 0
			assert.InDelta(t, 0.6, sumSq/n, 0.02)
			assert.True(t, mean.Equals(Vec3{}, 0.02), "mean %v should be near origin", mean)
		})
	}
}
