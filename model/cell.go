package model

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// ErrSequencing is returned when a cell is committed before its next state was evaluated
var ErrSequencing = errors.New("cell committed before its next state was evaluated")

// Status is the committed life status of a cell
type Status uint8

const (
	Dead Status = iota
	Alive
)

// String returns a readable name for the status
func (s Status) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Liveness returns 1 for Alive and 0 for Dead
func (s Status) Liveness() int {
	if s == Alive {
		return 1
	}
	return 0
}

// Pending is the not-yet-committed next status of a cell
type Pending uint8

const (
	Unresolved Pending = iota
	PendingDead
	PendingAlive
)

// String returns a readable name for the pending value
func (p Pending) String() string {
	switch p {
	case PendingAlive:
		return "alive"
	case PendingDead:
		return "dead"
	case Unresolved:
		return "unresolved"
	default:
		return "pending(" + strconv.Itoa(int(p)) + ")"
	}
}

// Transition classifies a cell between Evaluate and Commit
type Transition uint8

const (
	Undecided Transition = iota
	StableAlive
	Dying
	Growing
	StableDead
)

// Cell holds the current status of one cell and its pending next status.
// The zero value is a dead, unresolved cell.
type Cell struct {
	Current Status
	Pending Pending
}

// NewCell returns an unresolved cell with the given status
func NewCell(s Status) Cell {
	return Cell{Current: s}
}

// AliveCell returns an unresolved live cell
func AliveCell() Cell { return Cell{Current: Alive} }

// DeadCell returns an unresolved dead cell
func DeadCell() Cell { return Cell{Current: Dead} }

// IsAlive reports whether the committed status is Alive
func (c Cell) IsAlive() bool {
	return c.Current == Alive
}

// Liveness returns 1 for a live cell and 0 otherwise. It only reads Current.
func (c Cell) Liveness() int {
	return c.Current.Liveness()
}

// Decide returns the pending value the rule yields for the given neighbor count
func (c Cell) Decide(neighbors int) Pending {
	if rules.NextAlive(c.IsAlive(), neighbors) {
		return PendingAlive
	}
	return PendingDead
}

// Evaluate stores the decision for the given neighbor count, overwriting any earlier one
func (c *Cell) Evaluate(neighbors int) {
	c.Pending = c.Decide(neighbors)
}

// Commit returns the cell advanced to its pending status
func (c Cell) Commit() (Cell, error) {
	switch c.Pending {
	case PendingAlive:
		return Cell{Current: Alive}, nil
	case PendingDead:
		return Cell{Current: Dead}, nil
	default:
		return c, ErrSequencing
	}
}

// Transition classifies the (current, pending) pair
func (c Cell) Transition() Transition {
	switch {
	case c.Pending == Unresolved:
		return Undecided
	case c.Current == Alive && c.Pending == PendingAlive:
		return StableAlive
	case c.Current == Alive:
		return Dying
	case c.Pending == PendingAlive:
		return Growing
	default:
		return StableDead
	}
}
