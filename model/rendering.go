package model

import (
	"io"
	"strings"
)

const (
	glyphStableAlive = '#'
	glyphDying       = '-'
	glyphGrowing     = '+'
	glyphStableDead  = '_'
	glyphUndecided   = ' '

	// ANSI erase display, then move the cursor home
	clearScreen = "\x1b[2J\x1b[H"
)

// Glyph returns the character drawn for a cell's transition
func Glyph(c Cell) rune {
	switch c.Transition() {
	case StableAlive:
		return glyphStableAlive
	case Dying:
		return glyphDying
	case Growing:
		return glyphGrowing
	case StableDead:
		return glyphStableDead
	default:
		return glyphUndecided
	}
}

// Render draws the board one row per line. Glyphs are only meaningful between Evaluate and Commit.
func Render(b *Board) string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := range b.height {
		for x := range b.width {
			sb.WriteRune(Glyph(b.cells[b.index(x, y)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TerminalRenderer draws boards to an ANSI terminal
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the board to the terminal
func (r *TerminalRenderer) Display(b *Board) error {
	_, err := io.WriteString(r.Out, Render(b))
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, clearScreen)
	return err
}
