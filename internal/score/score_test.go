package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerIsMonotonic(t *testing.T) {
	var l Ledger
	l.Add(10)
	l.Add(-50)
	l.Add(0)
	l.Add(150)

	assert.Equal(t, 160, l.Value())

	l.Reset()
	assert.Zero(t, l.Value())
}

func TestIsRecord(t *testing.T) {
	assert.True(t, IsRecord(11, 10))
	assert.False(t, IsRecord(10, 10), "tie is not a record")
	assert.False(t, IsRecord(0, 0))
}

func TestMilestones(t *testing.T) {
	m := NewMilestones(100)

	assert.Empty(t, m.Crossed(99))
	assert.Equal(t, []int{100}, m.Crossed(100))
	assert.Empty(t, m.Crossed(150))
	assert.Equal(t, []int{200, 300}, m.Crossed(320))

	assert.Nil(t, NewMilestones(0).Crossed(1000))
}
