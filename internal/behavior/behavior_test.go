package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/geom"
)

func TestChaseHeadsAtTarget(t *testing.T) {
	v := Chase{}.NextMove(geom.V(0, 0), geom.V(30, 40), 2.5)
	assert.InDelta(t, 1.5, v.X, 1e-9)
	assert.InDelta(t, 2.0, v.Y, 1e-9)

	assert.True(t, Chase{}.NextMove(geom.V(5, 5), geom.V(5, 5), 3).IsZero(), "already on target")
}

func TestChaseSurgesPastNominalSpeed(t *testing.T) {
	c := Chase{Surge: 2}
	v := c.NextMove(geom.V(0, 0), geom.V(30, 40), 2.5)
	assert.InDelta(t, 3.0, v.X, 1e-9)
	assert.InDelta(t, 4.0, v.Y, 1e-9)

	// Close to the target the step shrinks to the remaining distance.
	v = c.NextMove(geom.V(0, 0), geom.V(0.6, 0.8), 2.5)
	assert.InDelta(t, 1.0, v.Length(), 1e-9)

	b, err := Create("chase", 1)
	require.NoError(t, err)
	assert.InDelta(t, 2*DefaultSurge, b.NextMove(geom.V(0, 0), geom.V(100, 0), 2).Length(), 1e-9)
}

func TestJitterIsDeterministicPerSeed(t *testing.T) {
	a := NewJitter(99, 0.6)
	b := NewJitter(99, 0.6)
	for i := 0; i < 50; i++ {
		va := a.NextMove(geom.V(0, 0), geom.V(100, 0), 2)
		vb := b.NextMove(geom.V(0, 0), geom.V(100, 0), 2)
		require.Equal(t, va, vb)
		require.InDelta(t, 2*DefaultSurge, va.Length(), 1e-9)
		require.Positive(t, va.X, "wobble never reverses the chase")
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"chase", "idle", "jitter"}, List())
	assert.True(t, Exists("chase"))
	assert.False(t, Exists("teleport"))

	b, err := Create("jitter", 1)
	require.NoError(t, err)
	assert.Equal(t, "jitter", b.Name())

	_, err = Create("teleport", 1)
	assert.Error(t, err)

	assert.Panics(t, func() {
		Register("chase", func(int64) Behavior { return Chase{} })
	})
}
