package game

import (
	"fmt"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/puzzle"
)

// VerifyResult is the outcome of replaying a key sequence.
type VerifyResult struct {
	Solved         bool
	EffectiveMoves int
	TotalKeys      int
}

// Verify regenerates the board for a seed and shape, replays the key sequence,
// and reports whether it reaches the solved state. Keys that slide nothing are
// counted in TotalKeys but not in EffectiveMoves.
func Verify(seed puzzle.Seed, width, height int, keys string) (VerifyResult, error) {
	board, err := puzzle.Generate(seed, width, height)
	if err != nil {
		return VerifyResult{}, err
	}
	return Replay(board, keys)
}

// Replay applies a key sequence to a board.
func Replay(board *puzzle.Board, keys string) (VerifyResult, error) {
	res := VerifyResult{TotalKeys: len(keys)}

	for i := 0; i < len(keys); i++ {
		key := string(keys[i])

		x, y, ok := KeyCell(key)
		if !ok {
			return VerifyResult{}, fmt.Errorf("%w: %q at position %d", config.ErrUnknownKey, key, i)
		}
		if x >= board.Width() || y >= board.Height() {
			return VerifyResult{}, fmt.Errorf("%w: %q at position %d on %dx%d board",
				config.ErrKeyOutOfBounds, key, i, board.Width(), board.Height())
		}

		if board.SlideFrom(x, y) > 0 {
			res.EffectiveMoves++
		}
	}

	res.Solved = board.IsSolved()
	return res, nil
}
