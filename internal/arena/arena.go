// Package arena builds the static boundary of a level: a ring of walls tiled
// across the panel and the playable rectangle enclosed by it.
package arena

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// EmptySpaces is the number of untiled cells left between the panel edge and
// the wall ring on every side.
const EmptySpaces = 2

// minBlocks is the smallest cell count per axis that still leaves one open
// cell inside the ring.
const minBlocks = 2*EmptySpaces + 3

var (
	// ErrInvalidArenaDimensions is returned when the panel cannot hold the
	// margin plus a wall ring with an open interior.
	ErrInvalidArenaDimensions = errors.New("arena: invalid dimensions")

	// ErrNoRoom is returned by PositionInside when an entity is larger than
	// the playable rectangle.
	ErrNoRoom = errors.New("arena: entity does not fit in playable area")
)

// Params describes the panel an arena is built for.
type Params struct {
	PanelHeight int
	PanelWidth  int
	HUDHeight   int // Rows reserved on top for the score/health display
	CellSize    int // Width and height of one wall
}

// Arena is a playable rectangle plus its boundary walls. Only the spawn
// points change after New.
type Arena struct {
	params      Params
	walls       []geom.Vec2 // Wall centers, column-major tiling order
	playable    geom.Rect
	spawnPoints []geom.Vec2
}

// New tiles the panel and returns the resulting arena.
func New(p Params) (*Arena, error) {
	if p.PanelHeight <= 0 || p.PanelWidth <= 0 || p.CellSize <= 0 || p.HUDHeight < 0 {
		return nil, fmt.Errorf("%w: panel %dx%d, hud %d, cell %d",
			ErrInvalidArenaDimensions, p.PanelWidth, p.PanelHeight, p.HUDHeight, p.CellSize)
	}

	drawableHeight := p.PanelHeight - p.HUDHeight
	if drawableHeight <= 0 {
		return nil, fmt.Errorf("%w: hud %d leaves no drawable area", ErrInvalidArenaDimensions, p.HUDHeight)
	}

	heightRest := drawableHeight % p.CellSize
	widthRest := p.PanelWidth % p.CellSize
	heightBlocks := drawableHeight / p.CellSize
	widthBlocks := p.PanelWidth / p.CellSize

	if widthBlocks < minBlocks || heightBlocks < minBlocks {
		return nil, fmt.Errorf("%w: %dx%d cells, need at least %dx%d",
			ErrInvalidArenaDimensions, widthBlocks, heightBlocks, minBlocks, minBlocks)
	}

	a := &Arena{params: p}

	half := p.CellSize / 2
	lastX := widthBlocks - EmptySpaces - 1
	lastY := heightBlocks - EmptySpaces - 1
	for col := EmptySpaces; col <= lastX; col++ {
		for row := EmptySpaces; row <= lastY; row++ {
			if col != EmptySpaces && row != EmptySpaces && col != lastX && row != lastY {
				continue // interior stays open
			}
			x := widthRest/2 + col*p.CellSize + half
			y := p.HUDHeight + heightRest/2 + row*p.CellSize + half
			a.walls = append(a.walls, geom.V(float64(x), float64(y)))
		}
	}

	topLeft := a.walls[0]
	a.playable = geom.NewRect(
		int(topLeft.X)+half,
		int(topLeft.Y)+half,
		(widthBlocks-2*EmptySpaces-2)*p.CellSize,
		(heightBlocks-2*EmptySpaces-2)*p.CellSize,
	)

	return a, nil
}

// Params returns the dimensions the arena was built from.
func (a *Arena) Params() Params {
	return a.params
}

// Walls returns the centers of the boundary walls in tiling order.
// The returned slice is a copy.
func (a *Arena) Walls() []geom.Vec2 {
	out := make([]geom.Vec2, len(a.walls))
	copy(out, a.walls)
	return out
}

// CellSize returns the wall edge length.
func (a *Arena) CellSize() int {
	return a.params.CellSize
}

// Playable returns the rectangle entities may occupy.
func (a *Arena) Playable() geom.Rect {
	return a.playable
}

// Center returns the center of the playable rectangle.
func (a *Arena) Center() geom.Vec2 {
	cx, cy := a.playable.Center()
	return geom.V(float64(cx), float64(cy))
}

// UpperY, LowerY, LeftX and RightX return the playable rectangle's edges.
func (a *Arena) UpperY() int { return a.playable.Y }
func (a *Arena) LowerY() int { return a.playable.Bottom() }
func (a *Arena) LeftX() int  { return a.playable.X }
func (a *Arena) RightX() int { return a.playable.Right() }

// IsInside reports whether box lies entirely within the playable rectangle.
func (a *Arena) IsInside(box geom.Rect) bool {
	return a.playable.ContainsRect(box)
}

// CellCenter returns the center of grid cell (col, row) using the same
// tiling as the boundary walls.
func (a *Arena) CellCenter(col, row int) geom.Vec2 {
	p := a.params
	widthRest := p.PanelWidth % p.CellSize
	heightRest := (p.PanelHeight - p.HUDHeight) % p.CellSize
	x := widthRest/2 + col*p.CellSize + p.CellSize/2
	y := p.HUDHeight + heightRest/2 + row*p.CellSize + p.CellSize/2
	return geom.V(float64(x), float64(y))
}

// PositionInside returns a uniformly random center such that a w×h box placed
// there is entirely inside the playable rectangle.
func (a *Arena) PositionInside(w, h int, rng *rand.Rand) (geom.Vec2, error) {
	spanX := a.playable.W - w
	spanY := a.playable.H - h
	if spanX < 0 || spanY < 0 {
		return geom.Vec2{}, fmt.Errorf("%w: %dx%d in %dx%d", ErrNoRoom, w, h, a.playable.W, a.playable.H)
	}

	x := a.playable.X + w/2 + rng.Intn(spanX+1)
	y := a.playable.Y + h/2 + rng.Intn(spanY+1)
	return geom.V(float64(x), float64(y)), nil
}

// AddSpawnPoint registers a preferred spawn location.
func (a *Arena) AddSpawnPoint(p geom.Vec2) {
	a.spawnPoints = append(a.spawnPoints, p)
}

// SpawnPoints returns the registered spawn locations.
func (a *Arena) SpawnPoints() []geom.Vec2 {
	out := make([]geom.Vec2, len(a.spawnPoints))
	copy(out, a.spawnPoints)
	return out
}

// RandomSpawnPoint picks one registered spawn location.
// ok is false when none were registered.
func (a *Arena) RandomSpawnPoint(rng *rand.Rand) (p geom.Vec2, ok bool) {
	if len(a.spawnPoints) == 0 {
		return geom.Vec2{}, false
	}
	return a.spawnPoints[rng.Intn(len(a.spawnPoints))], true
}
