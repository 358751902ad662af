package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/models"
	"github.com/slidery/slidery/internal/puzzle"
)

// SolveRecorder persists completed solves. Satisfied by *db.DB.
type SolveRecorder interface {
	InsertSolve(solve models.Solve) error
}

// Registry owns all live sessions: creation, lookup, slide orchestration,
// TTL expiry, and solve recording.
type Registry struct {
	store SolveRecorder
	hub   *EventHub

	mu       sync.Mutex
	sessions map[string]*Session

	maxSessions int
	ttl         time.Duration
}

// NewRegistry creates a session registry.
func NewRegistry(store SolveRecorder, hub *EventHub, maxSessions int, ttl time.Duration) *Registry {
	r := &Registry{
		store:       store,
		hub:         hub,
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		ttl:         ttl,
	}

	slog.Info("session registry initialized",
		"maxSessions", maxSessions,
		"sessionTTL", ttl.String(),
	)
	return r
}

// Run sweeps expired sessions until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(config.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-ctx.Done():
			slog.Info("session registry stopped", "reason", ctx.Err())
			return
		}
	}
}

func (r *Registry) sweep() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.IdleSince().Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	for _, id := range expired {
		r.hub.Broadcast(Event{Type: "session_expired", Data: SessionExpiredData{SessionID: id}})
	}

	if len(expired) > 0 {
		slog.Info("expired idle sessions",
			"expired", len(expired),
			"remaining", remaining,
		)
	}
}

// CreateOptions configures a new session. Zero-value shape falls back to the
// caller's defaults before reaching the registry. Board, when set, overrides
// seed generation (replays and tests).
type CreateOptions struct {
	Width  int
	Height int
	Seed   *puzzle.Seed
	Player string
	Board  *puzzle.Board
}

// Create builds a new session from a fresh or supplied seed, registers it,
// and announces it on the hub.
func (r *Registry) Create(opts CreateOptions) (*Session, error) {
	seed := puzzle.Seed{}
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		var err error
		seed, err = puzzle.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("failed to create seed: %w", err)
		}
	}

	board := opts.Board
	if board == nil {
		var err error
		board, err = puzzle.Generate(seed, opts.Width, opts.Height)
		if err != nil {
			return nil, err
		}
	}

	session := NewSession(uuid.New().String(), opts.Player, seed, board)

	// Capacity is enforced in the same critical section as the insert, so
	// concurrent creates cannot race past the cap.
	r.mu.Lock()
	if len(r.sessions) >= r.maxSessions {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", config.ErrRegistryFull, r.maxSessions)
	}
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	slog.Info("session created",
		"sessionID", session.ID(),
		"shape", fmt.Sprintf("%dx%d", board.Width(), board.Height()),
		"player", opts.Player,
	)

	r.hub.Broadcast(Event{Type: "session_created", Data: SessionCreatedData{
		SessionID: session.ID(),
		Width:     board.Width(),
		Height:    board.Height(),
		Player:    opts.Player,
	}})

	return session, nil
}

// Get returns a session by ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete discards a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", config.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)

	slog.Info("session deleted", "sessionID", id)
	return nil
}

// SlideKey applies a control-grid key slide and handles the aftermath.
func (r *Registry) SlideKey(id, key string) (SlideResult, error) {
	s, err := r.Get(id)
	if err != nil {
		return SlideResult{}, err
	}

	res, err := s.SlideKey(key)
	if err != nil {
		return SlideResult{}, err
	}

	r.afterSlide(s, res)
	return res, nil
}

// SlideCell applies a coordinate slide and handles the aftermath.
func (r *Registry) SlideCell(id string, x, y int) (SlideResult, error) {
	s, err := r.Get(id)
	if err != nil {
		return SlideResult{}, err
	}

	res, err := s.SlideCell(x, y)
	if err != nil {
		return SlideResult{}, err
	}

	r.afterSlide(s, res)
	return res, nil
}

// afterSlide broadcasts effective moves and records solves.
func (r *Registry) afterSlide(s *Session, res SlideResult) {
	if res.Moved == 0 {
		return
	}

	snap := s.Snapshot()

	r.hub.Broadcast(Event{Type: "move_applied", Data: MoveAppliedData{
		SessionID: snap.ID,
		Moved:     res.Moved,
		MoveCount: res.MoveCount,
		State:     res.State,
	}})

	if !res.Solved {
		return
	}

	solve := models.Solve{
		ID:         uuid.New().String(),
		Seed:       snap.Seed,
		Width:      snap.Width,
		Height:     snap.Height,
		Player:     snap.Player,
		MoveCount:  snap.MoveCount,
		Moves:      snap.KeysString,
		DurationMS: res.DurationMS,
		SolvedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := r.store.InsertSolve(solve); err != nil {
		slog.Error("failed to record solve",
			"sessionID", snap.ID,
			"error", err,
		)
	} else {
		slog.Info("solve recorded",
			"sessionID", snap.ID,
			"moveCount", solve.MoveCount,
			"durationMS", solve.DurationMS,
		)
	}

	r.hub.Broadcast(Event{Type: "session_solved", Data: SessionSolvedData{
		SessionID:  snap.ID,
		Player:     snap.Player,
		MoveCount:  snap.MoveCount,
		DurationMS: res.DurationMS,
	}})
}

// Restart reshuffles a session with a fresh seed, keeping its shape.
func (r *Registry) Restart(id string) (*Session, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	snap := s.Snapshot()

	seed, err := puzzle.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to create seed: %w", err)
	}

	board, err := puzzle.Generate(seed, snap.Width, snap.Height)
	if err != nil {
		return nil, err
	}

	s.Restart(seed, board)

	slog.Info("session restarted", "sessionID", id)
	return s, nil
}

// ActiveCount returns the number of live sessions.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
