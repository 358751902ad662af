package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/puzzle"
)

// State is the lifecycle phase of a session's current attempt.
type State string

const (
	StateIdle    State = "idle"    // board shuffled, clock not started
	StateSolving State = "solving" // clock running since the first effective slide
	StateSolved  State = "solved"  // clock stopped
)

// Move is one applied, effective slide.
type Move struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Key   string `json:"key,omitempty"`
	Moved int    `json:"moved"`
}

// Session is one player's puzzle. All mutation goes through the mutex; an
// ineffective slide (moved == 0) changes nothing at all, including the clock.
type Session struct {
	mu sync.Mutex

	id     string
	player string
	seed   puzzle.Seed
	board  *puzzle.Board

	state     State
	history   []Move
	startedAt time.Time
	solvedIn  time.Duration

	createdAt  time.Time
	lastActive time.Time
}

// NewSession wraps a generated board in a fresh idle session.
func NewSession(id, player string, seed puzzle.Seed, board *puzzle.Board) *Session {
	now := time.Now()
	return &Session{
		id:         id,
		player:     player,
		seed:       seed,
		board:      board,
		state:      StateIdle,
		createdAt:  now,
		lastActive: now,
	}
}

// SlideResult reports the outcome of a slide.
type SlideResult struct {
	Moved      int
	State      State
	Solved     bool
	DurationMS int64
	MoveCount  int
}

// SlideCell applies a slide from the given cell. The clock starts on the first
// effective slide and stops on the slide that solves the board.
func (s *Session) SlideCell(x, y int) (SlideResult, error) {
	return s.slide(x, y, CellKey(x, y))
}

// SlideKey resolves a control-grid key and applies the slide.
func (s *Session) SlideKey(key string) (SlideResult, error) {
	x, y, ok := KeyCell(key)
	if !ok {
		return SlideResult{}, fmt.Errorf("%w: %q", config.ErrUnknownKey, key)
	}

	s.mu.Lock()
	w, h := s.board.Width(), s.board.Height()
	s.mu.Unlock()

	if x >= w || y >= h {
		return SlideResult{}, fmt.Errorf("%w: %q on %dx%d board", config.ErrKeyOutOfBounds, key, w, h)
	}

	return s.slide(x, y, key)
}

func (s *Session) slide(x, y int, key string) (SlideResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSolved {
		return SlideResult{}, config.ErrSessionSolved
	}

	moved := s.board.SlideFrom(x, y)
	if moved == 0 {
		return SlideResult{Moved: 0, State: s.state, MoveCount: len(s.history)}, nil
	}

	s.lastActive = time.Now()
	s.history = append(s.history, Move{X: x, Y: y, Key: key, Moved: moved})

	if s.state == StateIdle {
		s.state = StateSolving
		s.startedAt = s.lastActive
	}

	res := SlideResult{Moved: moved, State: s.state, MoveCount: len(s.history)}

	if s.state == StateSolving && s.board.IsSolved() {
		s.state = StateSolved
		s.solvedIn = s.lastActive.Sub(s.startedAt)
		res.State = StateSolved
		res.Solved = true
		res.DurationMS = s.solvedIn.Milliseconds()
	}

	return res, nil
}

// Restart replaces the board with a fresh shuffle and resets the attempt.
func (s *Session) Restart(seed puzzle.Seed, board *puzzle.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seed = seed
	s.board = board
	s.state = StateIdle
	s.history = nil
	s.startedAt = time.Time{}
	s.solvedIn = 0
	s.lastActive = time.Now()
}

// SolveTime returns the running clock while solving, the final time when
// solved, and zero while idle.
func (s *Session) SolveTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSolving:
		return time.Since(s.startedAt)
	case StateSolved:
		return s.solvedIn
	default:
		return 0
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// IdleSince returns the time of the last effective activity.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot is an immutable view of the session for serialization.
type Snapshot struct {
	ID         string `json:"id"`
	Player     string `json:"player,omitempty"`
	Seed       string `json:"seed"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Cells      []int  `json:"cells"`
	State      State  `json:"state"`
	History    []Move `json:"history"`
	MoveCount  int    `json:"move_count"`
	ElapsedMS  int64  `json:"elapsed_ms"`
	CreatedAt  string `json:"created_at"`
	KeysString string `json:"keys,omitempty"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Move, len(s.history))
	copy(history, s.history)

	var elapsed time.Duration
	switch s.state {
	case StateSolving:
		elapsed = time.Since(s.startedAt)
	case StateSolved:
		elapsed = s.solvedIn
	}

	return Snapshot{
		ID:         s.id,
		Player:     s.player,
		Seed:       s.seed.String(),
		Width:      s.board.Width(),
		Height:     s.board.Height(),
		Cells:      s.board.Cells(),
		State:      s.state,
		History:    history,
		MoveCount:  len(history),
		ElapsedMS:  elapsed.Milliseconds(),
		CreatedAt:  s.createdAt.UTC().Format(time.RFC3339),
		KeysString: keysString(history),
	}
}

// keysString concatenates the key chars of a history; empty when any move
// lacks key coverage (coordinate play on boards beyond the control grid).
func keysString(history []Move) string {
	out := make([]byte, 0, len(history))
	for _, m := range history {
		if m.Key == "" {
			return ""
		}
		out = append(out, m.Key...)
	}
	return string(out)
}
