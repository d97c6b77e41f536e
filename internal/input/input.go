// Package input turns raw movement key state into the intents the simulation
// consumes. Only Intent values cross into the game loop.
package input

import "github.com/vovakirdan/tui-shooter/internal/geom"

// Intent is what the player asks for during one tick.
type Intent struct {
	Direction geom.Direction
	Fire      bool
}

// Empty reports whether the intent asks for nothing.
func (i Intent) Empty() bool {
	return i.Direction == geom.DirNone && !i.Fire
}

// Merge folds a batch of intents received during one tick into one. The last
// non-none direction wins; fire is set if any intent fired.
func Merge(intents []Intent) Intent {
	var out Intent
	for _, in := range intents {
		if in.Direction != geom.DirNone {
			out.Direction = in.Direction
		}
		out.Fire = out.Fire || in.Fire
	}
	return out
}

// Key is one of the four movement keys.
type Key uint8

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "none"
	}
}

// maxKeys is how many keys combine into one direction.
const maxKeys = 2

// Resolver combines held and tapped movement keys into one direction.
// Held keys outrank tapped ones, at most two keys combine into a diagonal and
// opposite keys cancel out. A Resolver is not safe for concurrent use.
type Resolver struct {
	pressed []Key // Held keys in press order
	typed   []Key // Keys tapped since the last Resolve
}

// Press marks k as held until Release. Held keys need a front end that
// reports key releases; the terminal front end only calls Type.
func (r *Resolver) Press(k Key) {
	if !contains(r.pressed, k) {
		r.pressed = append(r.pressed, k)
	}
}

// Release clears a held key.
func (r *Resolver) Release(k Key) {
	for i, p := range r.pressed {
		if p == k {
			r.pressed = append(r.pressed[:i], r.pressed[i+1:]...)
			return
		}
	}
}

// Type records a one-shot tap, consumed by the next Resolve.
func (r *Resolver) Type(k Key) {
	r.typed = append(r.typed, k)
}

// Reset forgets every held and tapped key.
func (r *Resolver) Reset() {
	r.pressed = nil
	r.typed = nil
}

// Resolve returns the direction for the current key state and consumes the
// tapped keys.
func (r *Resolver) Resolve() geom.Direction {
	chosen := make([]Key, 0, maxKeys)
	for _, src := range [][]Key{r.pressed, r.typed} {
		for _, k := range src {
			if len(chosen) == maxKeys {
				break
			}
			if !contains(chosen, k) {
				chosen = append(chosen, k)
			}
		}
	}
	r.typed = r.typed[:0]

	switch len(chosen) {
	case 1:
		return single(chosen[0])
	case 2:
		return Combine(chosen[0], chosen[1])
	default:
		return geom.DirNone
	}
}

// Combine returns the direction two distinct keys form together.
func Combine(a, b Key) geom.Direction {
	has := func(k Key) bool { return a == k || b == k }
	switch {
	case a == b:
		return single(a)
	case has(KeyUp) && has(KeyDown), has(KeyLeft) && has(KeyRight):
		return geom.DirNone
	case has(KeyUp) && has(KeyRight):
		return geom.DirUpRight
	case has(KeyUp) && has(KeyLeft):
		return geom.DirUpLeft
	case has(KeyDown) && has(KeyRight):
		return geom.DirDownRight
	case has(KeyDown) && has(KeyLeft):
		return geom.DirDownLeft
	default:
		return geom.DirNone
	}
}

func single(k Key) geom.Direction {
	switch k {
	case KeyUp:
		return geom.DirUp
	case KeyDown:
		return geom.DirDown
	case KeyLeft:
		return geom.DirLeft
	case KeyRight:
		return geom.DirRight
	default:
		return geom.DirNone
	}
}

func contains(keys []Key, k Key) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
