package model

import "math/rand/v2"

// glider moves one cell down and to the right every 4 generations
var glider = [][]bool{
	{false, true, false},
	{false, false, true},
	{true, true, true},
}

// AddPattern stamps a pattern with its top-left corner at (startX, startY).
// Coordinates wrap around the board edges. False entries set dead cells.
func (b *Board) AddPattern(startX, startY int, pattern [][]bool) {
	for y, row := range pattern {
		for x, alive := range row {
			wx, wy := b.wrap(startX+x, startY+y)
			if alive {
				b.cells[b.index(wx, wy)] = AliveCell()
			} else {
				b.cells[b.index(wx, wy)] = DeadCell()
			}
		}
	}
}

// AddGlider adds a glider pattern at the specified position
func (b *Board) AddGlider(startX, startY int) {
	b.AddPattern(startX, startY, glider)
}

// AddBlinker adds a horizontal blinker oscillator
func (b *Board) AddBlinker(startX, startY int) {
	b.AddPattern(startX, startY, [][]bool{{true, true, true}})
}

// AddBlock adds a 2x2 still life
func (b *Board) AddBlock(startX, startY int) {
	b.AddPattern(startX, startY, [][]bool{{true, true}, {true, true}})
}

// Randomize brings cells to life with the given probability. Cells that are
// not chosen keep their current status.
func (b *Board) Randomize(rng *rand.Rand, density float64) {
	for i := range b.cells {
		if rng.Float64() < density {
			b.cells[i] = AliveCell()
		}
	}
}

// SeedInterestingPatterns clears the board and adds gliders, an oscillator and random life
func (b *Board) SeedInterestingPatterns(rng *rand.Rand, density float64) {
	b.Clear()

	if b.width >= 10 && b.height >= 10 {
		b.AddGlider(5, 5)
		if b.width >= 20 && b.height >= 15 {
			b.AddGlider(b.width-8, 5)
		}

		b.AddBlinker(b.width/4, b.height/4)
		if b.width >= 30 {
			b.AddBlinker(3*b.width/4, 3*b.height/4)
		}
	}

	b.Randomize(rng, density)
}
