package puzzle

import (
	"fmt"
	"math/rand/v2"

	"github.com/slidery/slidery/internal/config"
)

// Generate deterministically produces a solvable, not-already-solved board for
// the given seed and shape. The shuffle is keyed by the full 32-byte seed via
// ChaCha8, so the same seed always yields the same board.
func Generate(seed Seed, width, height int) (*Board, error) {
	if width < 1 || height < 1 || width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", config.ErrInvalidShape, width, height)
	}

	n := width * height
	cells := make([]int, n)
	for i := range cells {
		cells[i] = (i + 1) % n
	}

	rng := rand.New(rand.NewChaCha8(seed))
	rng.Shuffle(n, func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	b := &Board{width: width, height: height, cells: cells}

	if !b.solvable() {
		if width == 1 || height == 1 {
			// Slides on a line never reorder pieces, so the only repair
			// that yields a reachable arrangement is putting them in order.
			sortPieces(cells)
		} else {
			// Transposing any two pieces flips the permutation parity,
			// which is exactly the solvability invariant.
			i, j := firstTwoPieces(cells)
			cells[i], cells[j] = cells[j], cells[i]
		}
	}

	if b.IsSolved() {
		deSolve(b)
	}

	return b, nil
}

// sortPieces rewrites the non-blank cells in increasing order, leaving the
// blank where it is. The cells hold a permutation of 1..n-1 plus the blank,
// so assigning ascending values in reading order is a sort.
func sortPieces(cells []int) {
	next := 1
	for i, piece := range cells {
		if piece == Blank {
			continue
		}
		cells[i] = next
		next++
	}
}

// firstTwoPieces returns the indexes of the first two non-blank cells.
// Only 2-D boards reach this, and those have at least three pieces.
func firstTwoPieces(cells []int) (int, int) {
	first := -1
	for i, piece := range cells {
		if piece == Blank {
			continue
		}
		if first == -1 {
			first = i
			continue
		}
		return first, i
	}
	panic("puzzle: fewer than two pieces")
}

// deSolve applies one slide so the board is no longer in the solved state.
// A slide is a legal move, so solvability is preserved.
func deSolve(b *Board) {
	bx, by := b.BlankPos()
	if b.width > 1 {
		if bx > 0 {
			b.SlideFrom(bx-1, by)
		} else {
			b.SlideFrom(bx+1, by)
		}
		return
	}
	if by > 0 {
		b.SlideFrom(bx, by-1)
	} else {
		b.SlideFrom(bx, by+1)
	}
}
