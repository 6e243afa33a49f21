package model

// maxCyclePeriod is the longest oscillator period History recognises
const maxCyclePeriod = 3

// History keeps hashes of recent generations to detect still lifes and short cycles
type History struct {
	hashes []string
}

// Observe records the board's current generation and reports whether it
// repeats one of the previous maxCyclePeriod generations.
func (h *History) Observe(b *Board) bool {
	hash := b.Hash()

	stagnant := false
	for _, prev := range h.hashes {
		if prev == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	// Keep only the last few states to detect cycles
	if len(h.hashes) > maxCyclePeriod {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = nil
}
