package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is a palette index used by Canvas cells.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorPlayer
	ColorPlayerHit
	ColorBullet
	ColorEnemy
	ColorRunner
	ColorBrute
	ColorBonusLow
	ColorBonusMedium
	ColorBonusHigh
	ColorHUD
	ColorDim
)

// colorStyles maps palette entries to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:     lipgloss.NewStyle(),
	ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	ColorPlayerHit:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	ColorBullet:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorEnemy:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorRunner:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorBrute:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	ColorBonusLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorBonusMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorBonusHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

type cell struct {
	r     rune
	color Color
}

// Canvas is a fixed-size grid of colored runes. Out-of-bounds writes are
// ignored.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Width returns the canvas width in terminal cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in terminal cells.
func (c *Canvas) Height() int { return c.height }

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.width)
	}
	c.Clear()
}

// Clear fills the canvas with blanks.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
}

// Set places a rune at (x, y).
func (c *Canvas) Set(x, y int, r rune, color Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

// Get returns the rune at (x, y), or a blank outside the canvas.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x].r
}

// Fill paints the half-open cell range [x0,x1)×[y0,y1).
func (c *Canvas) Fill(x0, y0, x1, y1 int, r rune, color Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, r, color)
		}
	}
}

// DrawText writes text starting at (x, y), clipped at the canvas edge.
func (c *Canvas) DrawText(x, y int, text string, color Color) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r, color)
		i++
	}
}

// DrawTextCentered writes text centered on row y.
func (c *Canvas) DrawTextCentered(y int, text string, color Color) {
	c.DrawText((c.width-lipgloss.Width(text))/2, y, text, color)
}

// Plain returns the canvas without styling, one line per row.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := range c.cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, cl := range c.cells[y] {
			sb.WriteRune(cl.r)
		}
	}
	return sb.String()
}

// Render converts the canvas to a styled string. Adjacent cells of the same
// color share one escape sequence.
func (c *Canvas) Render() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	for y := range c.cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		row := c.cells[y]
		for x := 0; x < len(row); {
			color := row[x].color
			var run strings.Builder
			for x < len(row) && row[x].color == color {
				run.WriteRune(row[x].r)
				x++
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
