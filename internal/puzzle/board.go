package puzzle

import (
	"fmt"
	"strings"

	"github.com/slidery/slidery/internal/config"
)

// Blank is the piece value representing the empty cell.
const Blank = 0

// Board is a sliding-puzzle grid. Cells are stored row-major; piece values are
// a permutation of 0..w*h-1 with 0 as the blank. The solved arrangement has
// piece y*w+x+1 at (x, y) and the blank in the bottom-right corner.
type Board struct {
	width  int
	height int
	cells  []int
}

// NewBoard builds a board from explicit cells. The cells must be a permutation
// of 0..width*height-1.
func NewBoard(width, height int, cells []int) (*Board, error) {
	if width < 1 || height < 1 || width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", config.ErrInvalidShape, width, height)
	}

	n := width * height
	if len(cells) != n {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", config.ErrInvalidCells, n, len(cells))
	}

	seen := make([]bool, n)
	for _, piece := range cells {
		if piece < 0 || piece >= n || seen[piece] {
			return nil, fmt.Errorf("%w: piece %d", config.ErrInvalidCells, piece)
		}
		seen[piece] = true
	}

	b := &Board{width: width, height: height, cells: make([]int, n)}
	copy(b.cells, cells)
	return b, nil
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

// Cells returns a copy of the row-major cell values.
func (b *Board) Cells() []int {
	out := make([]int, len(b.cells))
	copy(out, b.cells)
	return out
}

// Cell returns the piece at (x, y).
func (b *Board) Cell(x, y int) int {
	return b.cells[y*b.width+x]
}

// BlankPos returns the coordinates of the blank cell.
func (b *Board) BlankPos() (int, int) {
	for i, piece := range b.cells {
		if piece == Blank {
			return i % b.width, i / b.width
		}
	}
	// Unreachable on a valid board.
	panic("puzzle: board has no blank cell")
}

// SlideFrom slides the row or column segment between (x, y) and the blank one
// step toward the blank, leaving the blank at (x, y). It returns the number of
// pieces moved: 0 when the target is out of bounds, is the blank itself, or
// shares neither row nor column with the blank.
func (b *Board) SlideFrom(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}

	bx, by := b.BlankPos()

	switch {
	case x == bx && y == by:
		return 0

	case y == by:
		step := 1
		if x < bx {
			step = -1
		}
		for cur := bx; cur != x; cur += step {
			b.cells[y*b.width+cur] = b.cells[y*b.width+cur+step]
		}
		b.cells[y*b.width+x] = Blank
		return abs(x - bx)

	case x == bx:
		step := 1
		if y < by {
			step = -1
		}
		for cur := by; cur != y; cur += step {
			b.cells[cur*b.width+x] = b.cells[(cur+step)*b.width+x]
		}
		b.cells[y*b.width+x] = Blank
		return abs(y - by)

	default:
		return 0
	}
}

// IsSolved reports whether every piece is on its home cell.
func (b *Board) IsSolved() bool {
	for i, piece := range b.cells[:len(b.cells)-1] {
		if piece != i+1 {
			return false
		}
	}
	return b.cells[len(b.cells)-1] == Blank
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{width: b.width, height: b.height, cells: make([]int, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// String renders the board as a debug grid with "__" for the blank.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			piece := b.Cell(x, y)
			if piece == Blank {
				sb.WriteString("__")
			} else {
				fmt.Fprintf(&sb, "%2d", piece)
			}
		}
	}
	return sb.String()
}

// solvable reports whether the arrangement can reach the solved state.
// Width odd: the piece inversion count must be even. Width even: the inversion
// count plus the blank's row from the bottom (1-based) must be odd.
// On a 1-wide or 1-high board slides only shift pieces along the line and can
// never reorder them, so the pieces must already be in increasing order.
func (b *Board) solvable() bool {
	inv := b.inversions()
	if b.width == 1 || b.height == 1 {
		return inv == 0
	}
	if b.width%2 == 1 {
		return inv%2 == 0
	}
	_, by := b.BlankPos()
	rowFromBottom := b.height - by
	return (inv+rowFromBottom)%2 == 1
}

// inversions counts piece pairs out of order in reading order, blank excluded.
func (b *Board) inversions() int {
	inv := 0
	for i, a := range b.cells {
		if a == Blank {
			continue
		}
		for _, c := range b.cells[i+1:] {
			if c != Blank && c < a {
				inv++
			}
		}
	}
	return inv
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
