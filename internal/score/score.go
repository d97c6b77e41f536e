// Package score holds the player's score ledger and the record comparison
// used when a run ends.
package score

// Ledger is a score counter that only ever grows within a run.
type Ledger struct {
	value int
}

// Add credits n points. Non-positive amounts are ignored.
func (l *Ledger) Add(n int) {
	if n <= 0 {
		return
	}
	l.value += n
}

// Value returns the accumulated score.
func (l *Ledger) Value() int {
	return l.value
}

// Reset clears the ledger for a new run.
func (l *Ledger) Reset() {
	l.value = 0
}

// IsRecord reports whether final beats the previous best.
// A tie is not a record.
func IsRecord(final, best int) bool {
	return final > best
}

// Milestones tracks score thresholds crossed every step points.
type Milestones struct {
	step int
	next int
}

// NewMilestones creates a tracker firing at step, 2*step, ...
// A non-positive step disables milestones.
func NewMilestones(step int) *Milestones {
	return &Milestones{step: step, next: step}
}

// Crossed returns every threshold reached by value since the last call.
func (m *Milestones) Crossed(value int) []int {
	if m.step <= 0 {
		return nil
	}
	var out []int
	for value >= m.next {
		out = append(out, m.next)
		m.next += m.step
	}
	return out
}
