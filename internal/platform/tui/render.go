package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/loop"
	"github.com/vovakirdan/tui-shooter/internal/world"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// Status is the front end state shown next to the world.
type Status struct {
	Best    int
	State   loop.State
	Record  bool   // The finished run set a new record
	Message string // Transient notice, e.g. a milestone
}

// viewport maps world coordinates onto a block of canvas cells.
type viewport struct {
	view  geom.Rect // World area shown
	scale float64   // World units per column
	left  int       // First canvas column
	top   int       // First canvas row
}

func newViewport(view geom.Rect, left, top, cols, rows int) viewport {
	vp := viewport{view: view, left: left, top: top}
	if cols <= 0 || rows <= 0 || view.Empty() {
		return vp
	}
	vp.scale = math.Max(float64(view.W)/float64(cols), float64(view.H)/(float64(rows)*cellAspect))

	// Center the world in the spare cells.
	usedCols := int(math.Ceil(float64(view.W) / vp.scale))
	usedRows := int(math.Ceil(float64(view.H) / (vp.scale * cellAspect)))
	vp.left += max(0, (cols-usedCols)/2)
	vp.top += max(0, (rows-usedRows)/2)
	return vp
}

func (vp viewport) cell(x, y float64) (int, int) {
	col := int(math.Floor((x - float64(vp.view.X)) / vp.scale))
	row := int(math.Floor((y - float64(vp.view.Y)) / (vp.scale * cellAspect)))
	return vp.left + col, vp.top + row
}

// fill paints the cells covered by r, at least one.
func (vp viewport) fill(c *Canvas, r geom.Rect, glyph rune, color Color) {
	if vp.scale == 0 {
		return
	}
	x0, y0 := vp.cell(float64(r.X), float64(r.Y))
	x1, y1 := vp.cell(float64(r.Right()), float64(r.Bottom()))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	c.Fill(x0, y0, x1, y1, glyph, color)
}

// worldView returns the area the walls enclose, or the panel when there are
// no walls.
func worldView(s *world.Snapshot) geom.Rect {
	var (
		box   geom.Rect
		found bool
	)
	for _, e := range s.Entities {
		if e.Kind != entity.KindWall {
			continue
		}
		if !found {
			box, found = e.Bounds, true
			continue
		}
		x0, y0 := min(box.X, e.Bounds.X), min(box.Y, e.Bounds.Y)
		x1, y1 := max(box.Right(), e.Bounds.Right()), max(box.Bottom(), e.Bounds.Bottom())
		box = geom.NewRect(x0, y0, x1-x0, y1-y0)
	}
	if !found {
		return s.Panel
	}
	return box
}

var headingGlyphs = map[geom.Direction]rune{
	geom.DirUp:        '▲',
	geom.DirDown:      '▼',
	geom.DirLeft:      '◀',
	geom.DirRight:     '▶',
	geom.DirUpLeft:    '◤',
	geom.DirUpRight:   '◥',
	geom.DirDownLeft:  '◣',
	geom.DirDownRight: '◢',
}

func glyphFor(e world.EntityView) (rune, Color) {
	switch e.Kind {
	case entity.KindWall:
		return '█', ColorWall
	case entity.KindBullet:
		return '•', ColorBullet
	case entity.KindBonus:
		switch e.Tier {
		case entity.TierHigh:
			return '$', ColorBonusHigh
		case entity.TierMedium:
			return '$', ColorBonusMedium
		default:
			return '$', ColorBonusLow
		}
	case entity.KindEnemy:
		switch e.Variant {
		case entity.VariantRunner:
			return 'r', ColorRunner
		case entity.VariantBrute:
			return 'B', ColorBrute
		default:
			return 'x', ColorEnemy
		}
	default:
		return '?', ColorDefault
	}
}

// DrawWorld renders the snapshot's entities into the rows [top, top+rows).
func DrawWorld(c *Canvas, s *world.Snapshot, top, rows int) {
	if s == nil {
		return
	}
	vp := newViewport(worldView(s), 0, top, c.Width(), rows)

	var player *world.EntityView
	for i, e := range s.Entities {
		if e.Kind == entity.KindPlayer {
			player = &s.Entities[i]
			continue
		}
		glyph, color := glyphFor(e)
		vp.fill(c, e.Bounds, glyph, color)
	}

	// The player is drawn last so nothing hides it.
	if player != nil {
		glyph, ok := headingGlyphs[s.Heading]
		if !ok {
			glyph = '@'
		}
		color := ColorPlayer
		if s.Invulnerable && s.Tick%6 < 3 {
			color = ColorPlayerHit
		}
		vp.fill(c, player.Bounds, glyph, color)
	}
}

// HUDLine formats the status line shown above the arena.
func HUDLine(s *world.Snapshot, st Status) string {
	if s == nil {
		return "loading..."
	}
	hearts := strings.Repeat("♥", max(0, s.Health)) + strings.Repeat("♡", max(0, s.MaxHealth-s.Health))
	best := max(st.Best, s.Score)
	line := fmt.Sprintf("SCORE %d  BEST %d  HP %s  LEVEL %d %s  WAVE %d",
		s.Score, best, hearts, s.Level+1, s.LevelName, s.Wave)
	switch st.State {
	case loop.StatePaused:
		line += "  [PAUSED]"
	case loop.StateGameOver:
		line += "  [GAME OVER]"
	}
	if st.Message != "" {
		line += "  " + st.Message
	}
	return line
}

// DrawGameOver overlays the end-of-run banner in the middle of the canvas.
func DrawGameOver(c *Canvas, s *world.Snapshot, st Status) {
	lines := []string{
		"G A M E   O V E R",
		"",
		fmt.Sprintf("Score: %d", s.Score),
	}
	if st.Record {
		lines = append(lines, "NEW RECORD!")
	}
	lines = append(lines, "", "r restart   q quit")

	y := (c.Height() - len(lines)) / 2
	for i, l := range lines {
		width := len([]rune(l))
		x := (c.Width() - width) / 2
		c.Fill(x-1, y+i, x+width+1, y+i+1, ' ', ColorDefault)
		c.DrawText(x, y+i, l, ColorHUD)
	}
}

// Frame renders a full screen: HUD, arena and an optional banner.
func Frame(c *Canvas, s *world.Snapshot, st Status) {
	c.Clear()
	c.DrawText(0, 0, HUDLine(s, st), ColorHUD)
	if s == nil {
		return
	}
	DrawWorld(c, s, 1, c.Height()-1)
	if st.State == loop.StateGameOver {
		DrawGameOver(c, s, st)
	}
}
