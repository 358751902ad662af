package game

import (
	"errors"
	"testing"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/puzzle"
)

// oneAwaySession builds a 2x2 session one slide from solved:
//  1  2
//  __ 3
// Pressing 'y' (cell 2,1 is out of bounds) fails; pressing 't' (1,1) solves.
func oneAwaySession(t *testing.T) *Session {
	t.Helper()
	board, err := puzzle.NewBoard(2, 2, []int{1, 2, 0, 3})
	if err != nil {
		t.Fatalf("NewBoard error = %v", err)
	}
	return NewSession("test-session", "ada", puzzle.Seed{}, board)
}

func TestSession_StartsIdle(t *testing.T) {
	s := oneAwaySession(t)

	snap := s.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("new session state = %s, want %s", snap.State, StateIdle)
	}
	if snap.MoveCount != 0 {
		t.Errorf("new session move count = %d, want 0", snap.MoveCount)
	}
	if s.SolveTime() != 0 {
		t.Error("idle session should report zero solve time")
	}
}

func TestSession_IneffectiveSlideChangesNothing(t *testing.T) {
	s := oneAwaySession(t)

	// Tap the blank cell itself: guaranteed no-op.
	res, err := s.SlideCell(0, 1)
	if err != nil {
		t.Fatalf("SlideCell error = %v", err)
	}
	if res.Moved != 0 {
		t.Fatalf("sliding the blank moved %d pieces", res.Moved)
	}

	snap := s.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("state = %s after no-op slide, want idle", snap.State)
	}
	if snap.MoveCount != 0 {
		t.Errorf("move count = %d after no-op slide, want 0", snap.MoveCount)
	}
}

func TestSession_SolveFlow(t *testing.T) {
	s := oneAwaySession(t)

	res, err := s.SlideKey("t")
	if err != nil {
		t.Fatalf("SlideKey error = %v", err)
	}
	if res.Moved != 1 {
		t.Errorf("moved = %d, want 1", res.Moved)
	}
	if !res.Solved {
		t.Fatal("expected solving slide to report solved")
	}
	if res.State != StateSolved {
		t.Errorf("state = %s, want solved", res.State)
	}
	if res.DurationMS < 0 {
		t.Errorf("negative duration %d", res.DurationMS)
	}

	snap := s.Snapshot()
	if snap.KeysString != "t" {
		t.Errorf("keys = %q, want %q", snap.KeysString, "t")
	}
	if snap.MoveCount != 1 {
		t.Errorf("move count = %d, want 1", snap.MoveCount)
	}

	// Further slides are rejected.
	if _, err := s.SlideKey("4"); !errors.Is(err, config.ErrSessionSolved) {
		t.Errorf("slide on solved session error = %v, want ErrSessionSolved", err)
	}
}

func TestSession_ClockStartsOnFirstEffectiveSlide(t *testing.T) {
	board, err := puzzle.NewBoard(2, 2, []int{1, 0, 3, 2}) // blank at (1,0)
	if err != nil {
		t.Fatalf("NewBoard error = %v", err)
	}
	s := NewSession("clock", "", puzzle.Seed{}, board)

	// No-op: tap the blank. Clock must not start.
	if _, err := s.SlideCell(1, 0); err != nil {
		t.Fatalf("SlideCell error = %v", err)
	}
	if snap := s.Snapshot(); snap.State != StateIdle {
		t.Fatalf("state = %s, want idle", snap.State)
	}

	// Effective move: clock starts.
	res, err := s.SlideCell(0, 0)
	if err != nil {
		t.Fatalf("SlideCell error = %v", err)
	}
	if res.Moved != 1 || res.State != StateSolving {
		t.Fatalf("res = %+v, want 1 piece moved and solving state", res)
	}
	if s.SolveTime() < 0 {
		t.Error("solving session should report a running clock")
	}
}

func TestSession_SlideKeyErrors(t *testing.T) {
	s := oneAwaySession(t)

	if _, err := s.SlideKey("z"); !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("unknown key error = %v, want ErrUnknownKey", err)
	}
	// 'y' is (2,1): valid grid key, outside a 2x2 board.
	if _, err := s.SlideKey("y"); !errors.Is(err, config.ErrKeyOutOfBounds) {
		t.Errorf("out-of-bounds key error = %v, want ErrKeyOutOfBounds", err)
	}
}

func TestSession_Restart(t *testing.T) {
	s := oneAwaySession(t)

	if _, err := s.SlideKey("t"); err != nil {
		t.Fatalf("SlideKey error = %v", err)
	}

	seed := puzzle.Seed{7}
	board, err := puzzle.Generate(seed, 2, 2)
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	s.Restart(seed, board)

	snap := s.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("state after restart = %s, want idle", snap.State)
	}
	if snap.MoveCount != 0 {
		t.Errorf("move count after restart = %d, want 0", snap.MoveCount)
	}
	if snap.Seed != seed.String() {
		t.Errorf("seed after restart = %s, want %s", snap.Seed, seed.String())
	}
	if s.SolveTime() != 0 {
		t.Error("restarted session should report zero solve time")
	}
}
