package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxCells is the largest number of cells a board may hold
const MaxCells = 1 << 28

var (
	// ErrInvalidSize is returned when a board dimension is non-positive or the board exceeds MaxCells
	ErrInvalidSize = errors.New("invalid board dimensions")
	// ErrOutOfBounds is returned when coordinates fall outside the board
	ErrOutOfBounds = errors.New("coordinates out of bounds")
)

// Board is a fixed-size toroidal grid of cells stored in row-major order
type Board struct {
	width   int
	height  int
	cells   []Cell
	workers int
}

// NewBoard creates a board with all cells dead and unresolved
func NewBoard(width, height int) (*Board, error) {
	if err := checkSize(width, height); err != nil {
		return nil, errors.Wrap(err, "[NewBoard]")
	}
	return &Board{
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
		workers: 1,
	}, nil
}

// checkSize rejects non-positive dimensions and boards larger than MaxCells
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %dx%d, both must be positive", width, height)
	}
	// Divide rather than multiply so the check cannot overflow.
	if width > MaxCells/height {
		return errors.Wrapf(ErrInvalidSize, "got %dx%d, more than %d cells", width, height, MaxCells)
	}
	return nil
}

// Width returns the width of the board
func (b *Board) Width() int {
	return b.width
}

// Height returns the height of the board
func (b *Board) Height() int {
	return b.height
}

// SetWorkers sets how many goroutines Evaluate and Commit split rows across.
// Values below 1 are treated as 1.
func (b *Board) SetWorkers(n int) {
	b.workers = max(1, n)
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

func (b *Board) coords(i int) (int, int) {
	return i % b.width, i / b.width
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns a copy of the cell at (x, y), or false if the coordinates are outside the board
func (b *Board) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[b.index(x, y)], true
}

// Set overwrites the cell at (x, y)
func (b *Board) Set(x, y int, c Cell) error {
	if !b.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Board.Set] (%d,%d) on %dx%d board", x, y, b.width, b.height)
	}
	b.cells[b.index(x, y)] = c
	return nil
}

// Cells returns a row-major copy of every cell
func (b *Board) Cells() []Cell {
	return append([]Cell(nil), b.cells...)
}

// wrap maps any integer coordinates onto the torus
func (b *Board) wrap(x, y int) (int, int) {
	return (x%b.width + b.width) % b.width, (y%b.height + b.height) % b.height
}

// NeighborCount counts live cells in the Moore neighborhood of (x, y), wrapping at every edge
func (b *Board) NeighborCount(x, y int) int {
	x, y = b.wrap(x, y)
	var (
		up    = (y + 1) % b.height
		down  = (b.height + y - 1) % b.height
		right = (x + 1) % b.width
		left  = (b.width + x - 1) % b.width
	)
	// Reads Current only; parallel Evaluate writes Pending concurrently.
	live := func(x, y int) int {
		return b.cells[b.index(x, y)].Current.Liveness()
	}
	return live(x, up) + live(right, up) + live(right, y) + live(right, down) +
		live(x, down) + live(left, down) + live(left, y) + live(left, up)
}

// forEachBand runs fn over contiguous row ranges, in parallel when more than one worker is set
func (b *Board) forEachBand(fn func(startRow, endRow int) error) error {
	numWorkers := min(b.workers, b.height)
	if numWorkers <= 1 {
		return fn(0, b.height)
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (b.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, b.height)
		)
		if startRow >= b.height {
			break
		}

		eg.Go(func() error {
			return fn(startRow, endRow)
		})
	}

	return eg.Wait()
}

// eachBand is forEachBand for work with no failure path
func (b *Board) eachBand(fn func(startRow, endRow int)) {
	_ = b.forEachBand(func(startRow, endRow int) error {
		fn(startRow, endRow)
		return nil
	})
}

// Evaluate resolves the pending status of every cell from the current generation.
// Neighbor counts read only Current and each cell writes only its own Pending,
// so visiting order and row parallelism do not affect the result.
func (b *Board) Evaluate() {
	b.eachBand(func(startRow, endRow int) {
		for y := startRow; y < endRow; y++ {
			for x := range b.width {
				b.cells[b.index(x, y)].Evaluate(b.NeighborCount(x, y))
			}
		}
	})
}

// Commit moves every cell to its pending status. If any cell lacks a decision the
// board is left untouched and an ErrSequencing naming that cell is returned.
func (b *Board) Commit() error {
	err := b.forEachBand(func(startRow, endRow int) error {
		for i := startRow * b.width; i < endRow*b.width; i++ {
			if p := b.cells[i].Pending; p != PendingAlive && p != PendingDead {
				x, y := b.coords(i)
				return errors.Wrapf(ErrSequencing, "[Board.Commit] cell (%d,%d) pending %v", x, y, p)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Every pending value was checked above, so the apply pass cannot fail.
	b.eachBand(func(startRow, endRow int) {
		for i := startRow * b.width; i < endRow*b.width; i++ {
			b.cells[i], _ = b.cells[i].Commit()
		}
	})
	return nil
}

// Step evaluates and commits one generation
func (b *Board) Step() error {
	b.Evaluate()
	return b.Commit()
}

// CountLiving returns the number of cells whose current status is Alive
func (b *Board) CountLiving() (count int) {
	for _, c := range b.cells {
		count += c.Liveness()
	}
	return
}

// Transitions counts cells about to be born and about to die. Only meaningful between Evaluate and Commit.
func (b *Board) Transitions() (growing, dying int) {
	for _, c := range b.cells {
		switch c.Transition() {
		case Growing:
			growing++
		case Dying:
			dying++
		}
	}
	return
}

// Clear resets every cell to dead and unresolved
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Hash returns an MD5 hash of the current statuses, ignoring pending values
func (b *Board) Hash() string {
	h := md5.New()
	buf := make([]byte, len(b.cells))
	for i, c := range b.cells {
		buf[i] = byte(c.Liveness())
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}
