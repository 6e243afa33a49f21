package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
)

func newTestBoard(t *testing.T, w, h int, alive ...[2]int) *Board {
	t.Helper()
	b, err := NewBoard(w, h)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", w, h, err)
	}
	for _, p := range alive {
		if err := b.Set(p[0], p[1], AliveCell()); err != nil {
			t.Fatalf("Set(%d, %d): %v", p[0], p[1], err)
		}
	}
	return b
}

func livingSet(b *Board) map[[2]int]bool {
	set := map[[2]int]bool{}
	for y := range b.Height() {
		for x := range b.Width() {
			if c, _ := b.Get(x, y); c.IsAlive() {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func sameSet(a, b map[[2]int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func step(t *testing.T, b *Board, n int) {
	t.Helper()
	for i := range n {
		if err := b.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func alive(t *testing.T, b *Board, x, y int) bool {
	t.Helper()
	c, ok := b.Get(x, y)
	if !ok {
		t.Fatalf("Get(%d, %d) out of bounds", x, y)
	}
	return c.IsAlive()
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, 4, 3)
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", b.Width(), b.Height())
	}
	cells := b.Cells()
	if len(cells) != 12 {
		t.Fatalf("len(cells) = %d, want 12", len(cells))
	}
	for i, c := range cells {
		if c != (Cell{}) {
			t.Fatalf("cell %d = %+v, want dead/unresolved", i, c)
		}
	}

	for _, size := range [][2]int{
		{0, 3}, {3, 0}, {-1, 2},
		{math.MaxInt, 2},    // product wraps around
		{1 << 15, 1 << 15},  // four times MaxCells
		{MaxCells + 1, 1},   // one row too wide
		{MaxCells/2 + 1, 2}, // just over the cap
	} {
		if _, err := NewBoard(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewBoard(%d, %d): err = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewBoardAtCap(t *testing.T) {
	if err := checkSize(MaxCells, 1); err != nil {
		t.Fatalf("checkSize(MaxCells, 1): %v", err)
	}
	if err := checkSize(1<<14, 1<<14); err != nil {
		t.Fatalf("checkSize(1<<14, 1<<14): %v", err)
	}
}

func TestBoardGetSetBounds(t *testing.T) {
	b := newTestBoard(t, 4, 3)

	for _, p := range [][2]int{{4, 0}, {0, 3}, {-1, 0}, {0, -1}, {10, 10}} {
		if _, ok := b.Get(p[0], p[1]); ok {
			t.Errorf("Get(%d, %d) reported in bounds", p[0], p[1])
		}
		if err := b.Set(p[0], p[1], AliveCell()); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d, %d): err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}

	if err := b.Set(3, 2, AliveCell()); err != nil {
		t.Fatalf("Set(3, 2): %v", err)
	}
	if !alive(t, b, 3, 2) {
		t.Fatal("cell (3,2) should be alive after Set")
	}
	if b.CountLiving() != 1 {
		t.Fatalf("CountLiving = %d, want 1", b.CountLiving())
	}
}

func TestGetReturnsCopy(t *testing.T) {
	b := newTestBoard(t, 3, 3, [2]int{1, 1})
	c, _ := b.Get(1, 1)
	c.Current = Dead
	if !alive(t, b, 1, 1) {
		t.Fatal("mutating the returned cell must not change the board")
	}
}

func TestToroidalWrap(t *testing.T) {
	const w, h = 4, 3

	b := newTestBoard(t, w, h, [2]int{w - 1, h - 1})
	if got := b.NeighborCount(0, 0); got != 1 {
		t.Fatalf("(0,0) neighbor count = %d, want 1 from (W-1,H-1)", got)
	}

	b = newTestBoard(t, w, h, [2]int{0, 0})
	if got := b.NeighborCount(w-1, 0); got != 1 {
		t.Fatalf("(W-1,0) neighbor count = %d, want 1 from (0,0)", got)
	}
}

func TestNeighborCountFullNeighborhood(t *testing.T) {
	b := newTestBoard(t, 5, 5)
	for y := range 5 {
		for x := range 5 {
			_ = b.Set(x, y, AliveCell())
		}
	}
	for _, p := range [][2]int{{0, 0}, {4, 4}, {2, 2}, {0, 4}} {
		if got := b.NeighborCount(p[0], p[1]); got != 8 {
			t.Errorf("NeighborCount(%d, %d) = %d, want 8", p[0], p[1], got)
		}
	}
}

func TestStillLifeBlock(t *testing.T) {
	b := newTestBoard(t, 6, 6)
	b.AddBlock(2, 2)
	start := livingSet(b)

	for gen := range 10 {
		step(t, b, 1)
		if !sameSet(start, livingSet(b)) {
			t.Fatalf("block changed after generation %d", gen+1)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	b := newTestBoard(t, 5, 5)
	b.AddBlinker(1, 2)
	start := livingSet(b)

	step(t, b, 1)
	vertical := map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	if !sameSet(vertical, livingSet(b)) {
		t.Fatalf("after one generation got %v, want vertical blinker", livingSet(b))
	}
	if sameSet(start, livingSet(b)) {
		t.Fatal("blinker must not return after one generation")
	}

	step(t, b, 1)
	if !sameSet(start, livingSet(b)) {
		t.Fatalf("after two generations got %v, want %v", livingSet(b), start)
	}
}

func TestUnderpopulation(t *testing.T) {
	b := newTestBoard(t, 6, 6, [2]int{2, 2})
	step(t, b, 1)
	if alive(t, b, 2, 2) {
		t.Fatal("isolated cell should die")
	}

	b = newTestBoard(t, 6, 6, [2]int{2, 2}, [2]int{3, 2})
	step(t, b, 1)
	if alive(t, b, 2, 2) || alive(t, b, 3, 2) {
		t.Fatal("cells with one neighbor should die")
	}
}

func TestOverpopulation(t *testing.T) {
	b := newTestBoard(t, 6, 6,
		[2]int{2, 2},
		[2]int{1, 1}, [2]int{3, 1}, [2]int{1, 3}, [2]int{3, 3})
	if got := b.NeighborCount(2, 2); got != 4 {
		t.Fatalf("setup: neighbor count = %d, want 4", got)
	}
	step(t, b, 1)
	if alive(t, b, 2, 2) {
		t.Fatal("cell with 4 neighbors should die")
	}
}

func TestBirth(t *testing.T) {
	b := newTestBoard(t, 6, 6, [2]int{1, 1}, [2]int{3, 1}, [2]int{2, 3})
	if got := b.NeighborCount(2, 2); got != 3 {
		t.Fatalf("setup: neighbor count = %d, want 3", got)
	}
	step(t, b, 1)
	if !alive(t, b, 2, 2) {
		t.Fatal("dead cell with 3 neighbors should be born")
	}
}

func TestGliderTranslation(t *testing.T) {
	b := newTestBoard(t, 10, 10)
	b.AddGlider(1, 1)
	start := livingSet(b)

	step(t, b, 4)

	want := map[[2]int]bool{}
	for p := range start {
		want[[2]int{p[0] + 1, p[1] + 1}] = true
	}
	if !sameSet(want, livingSet(b)) {
		t.Fatalf("after 4 generations got %v, want %v", livingSet(b), want)
	}
}

func TestGliderWrapsAroundEdges(t *testing.T) {
	b := newTestBoard(t, 8, 8)
	b.AddGlider(0, 0)
	start := livingSet(b)

	// One full lap of the torus takes 4 generations per cell of travel.
	step(t, b, 4*8)
	if !sameSet(start, livingSet(b)) {
		t.Fatalf("glider did not return after a full lap: got %v", livingSet(b))
	}
}

func TestCommitWithoutEvaluate(t *testing.T) {
	b := newTestBoard(t, 4, 4, [2]int{1, 1})
	before := b.Cells()

	if err := b.Commit(); !errors.Is(err, ErrSequencing) {
		t.Fatalf("Commit without Evaluate: err = %v, want ErrSequencing", err)
	}
	for i, c := range b.Cells() {
		if _, err := c.Commit(); !errors.Is(err, ErrSequencing) {
			t.Errorf("cell %d: err = %v, want ErrSequencing", i, err)
		}
		if c != before[i] {
			t.Errorf("cell %d changed after failed commit", i)
		}
	}

	b.Evaluate()
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit after Evaluate: %v", err)
	}
	if err := b.Commit(); !errors.Is(err, ErrSequencing) {
		t.Fatalf("second Commit: err = %v, want ErrSequencing", err)
	}
}

func TestCommitAfterSetIsAllOrNothing(t *testing.T) {
	b := newTestBoard(t, 5, 5)
	b.AddBlinker(1, 2)
	b.Evaluate()

	if err := b.Set(0, 0, AliveCell()); err != nil {
		t.Fatal(err)
	}
	if err := b.Commit(); !errors.Is(err, ErrSequencing) {
		t.Fatalf("Commit after Set: err = %v, want ErrSequencing", err)
	}

	c, _ := b.Get(1, 2)
	if c.Current != Alive || c.Pending != PendingDead {
		t.Fatalf("cell (1,2) = %v/%v, want alive pending dead to survive the failed commit", c.Current, c.Pending)
	}
}

func TestCommitRejectsUnknownPending(t *testing.T) {
	b := newTestBoard(t, 4, 4)
	b.AddBlinker(0, 1)
	b.Evaluate()

	if err := b.Set(3, 3, Cell{Current: Alive, Pending: Pending(7)}); err != nil {
		t.Fatal(err)
	}
	before := b.Cells()

	for _, workers := range []int{1, 4} {
		b.SetWorkers(workers)
		if err := b.Commit(); !errors.Is(err, ErrSequencing) {
			t.Fatalf("workers=%d: err = %v, want ErrSequencing", workers, err)
		}
		for i, c := range b.Cells() {
			if c != before[i] {
				t.Fatalf("workers=%d: cell %d changed after failed commit", workers, i)
			}
		}
	}
}

func TestEvaluateOrderIndependent(t *testing.T) {
	b := newTestBoard(t, 5, 5)
	b.AddBlinker(1, 2)
	b.Evaluate()

	growing, dying := b.Transitions()
	if growing != 2 || dying != 2 {
		t.Fatalf("transitions = %d growing, %d dying; want 2 and 2", growing, dying)
	}
	// Re-evaluating reads only Current, so pending values written by the
	// first pass do not change the result.
	first := b.Cells()
	b.Evaluate()
	for i, c := range b.Cells() {
		if c != first[i] {
			t.Fatalf("cell %d changed on re-evaluation", i)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	const w, h = 37, 23

	seq := newTestBoard(t, w, h)
	par := newTestBoard(t, w, h)
	seq.Randomize(rand.New(rand.NewPCG(7, 0)), 0.35)
	par.Randomize(rand.New(rand.NewPCG(7, 0)), 0.35)
	par.SetWorkers(6)

	for gen := range 25 {
		step(t, seq, 1)
		step(t, par, 1)
		if seq.Hash() != par.Hash() {
			t.Fatalf("boards diverged at generation %d", gen+1)
		}
	}
}

func TestParallelCommitWithoutEvaluate(t *testing.T) {
	b := newTestBoard(t, 8, 8, [2]int{3, 3})
	b.SetWorkers(4)
	if err := b.Commit(); !errors.Is(err, ErrSequencing) {
		t.Fatalf("err = %v, want ErrSequencing", err)
	}
}

func TestSetWorkersMoreThanRows(t *testing.T) {
	b := newTestBoard(t, 5, 2)
	b.AddBlinker(1, 0)
	b.SetWorkers(16)
	step(t, b, 2)
	b.SetWorkers(0)
	step(t, b, 2)
}

func TestHashIgnoresPending(t *testing.T) {
	b := newTestBoard(t, 5, 5)
	b.AddBlinker(1, 2)
	before := b.Hash()
	b.Evaluate()
	if b.Hash() != before {
		t.Fatal("Evaluate must not change the hash")
	}
	if err := b.Commit(); err != nil {
		t.Fatal(err)
	}
	if b.Hash() == before {
		t.Fatal("committed blinker should hash differently")
	}
}

func TestClear(t *testing.T) {
	b := newTestBoard(t, 4, 4, [2]int{0, 0}, [2]int{3, 3})
	b.Clear()
	if b.CountLiving() != 0 {
		t.Fatalf("CountLiving = %d after Clear, want 0", b.CountLiving())
	}
}
