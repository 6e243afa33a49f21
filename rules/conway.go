package rules

/*
NextAlive applies Conway's Game of Life rules (B3/S23) to determine whether a
cell is alive in the next generation.

A live cell survives with 2 or 3 live neighbors; a dead cell is born with exactly 3.
*/
func NextAlive(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
