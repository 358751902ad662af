package game

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/models"
	"github.com/slidery/slidery/internal/puzzle"
)

// fakeStore records solves in memory.
type fakeStore struct {
	mu     sync.Mutex
	solves []models.Solve
}

func (f *fakeStore) InsertSolve(solve models.Solve) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.solves = append(f.solves, solve)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.solves)
}

func newTestRegistry(maxSessions int, ttl time.Duration) (*Registry, *fakeStore, *EventHub) {
	store := &fakeStore{}
	hub := NewEventHub()
	return NewRegistry(store, hub, maxSessions, ttl), store, hub
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r, _, _ := newTestRegistry(10, time.Hour)

	s, err := r.Create(CreateOptions{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if r.ActiveCount() != 1 {
		t.Errorf("active count = %d, want 1", r.ActiveCount())
	}

	got, err := r.Get(s.ID())
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.ID() != s.ID() {
		t.Errorf("Get returned session %s, want %s", got.ID(), s.ID())
	}

	if err := r.Delete(s.ID()); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := r.Get(s.ID()); !errors.Is(err, config.ErrSessionNotFound) {
		t.Errorf("Get after delete error = %v, want ErrSessionNotFound", err)
	}
	if err := r.Delete(s.ID()); !errors.Is(err, config.ErrSessionNotFound) {
		t.Errorf("double delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestRegistry_SeededCreateIsDeterministic(t *testing.T) {
	r, _, _ := newTestRegistry(10, time.Hour)

	seed := puzzle.Seed{9}
	a, err := r.Create(CreateOptions{Width: 3, Height: 3, Seed: &seed})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	b, err := r.Create(CreateOptions{Width: 3, Height: 3, Seed: &seed})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	cellsA, cellsB := a.Snapshot().Cells, b.Snapshot().Cells
	for i := range cellsA {
		if cellsA[i] != cellsB[i] {
			t.Fatal("same seed produced different session boards")
		}
	}
	if a.ID() == b.ID() {
		t.Error("sessions must have distinct IDs")
	}
}

func TestRegistry_CapacityLimit(t *testing.T) {
	r, _, _ := newTestRegistry(2, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := r.Create(CreateOptions{Width: 4, Height: 4}); err != nil {
			t.Fatalf("Create %d error = %v", i, err)
		}
	}

	_, err := r.Create(CreateOptions{Width: 4, Height: 4})
	if !errors.Is(err, config.ErrRegistryFull) {
		t.Errorf("Create at capacity error = %v, want ErrRegistryFull", err)
	}
}

func TestRegistry_ConcurrentCreatesRespectCap(t *testing.T) {
	const limit = 4
	const attempts = 64

	r, _, _ := newTestRegistry(limit, time.Hour)

	start := make(chan struct{})
	var wg sync.WaitGroup
	var created atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := r.Create(CreateOptions{Width: 3, Height: 3}); err == nil {
				created.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := created.Load(); got != limit {
		t.Errorf("successful creates = %d, want %d", got, limit)
	}
	if got := r.ActiveCount(); got != limit {
		t.Errorf("active count = %d, want %d", got, limit)
	}
}

func TestRegistry_SolveRecordedAndBroadcast(t *testing.T) {
	r, store, hub := newTestRegistry(10, time.Hour)

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	board, err := puzzle.NewBoard(2, 2, []int{1, 2, 0, 3})
	if err != nil {
		t.Fatalf("NewBoard error = %v", err)
	}
	seed := puzzle.Seed{3}
	s, err := r.Create(CreateOptions{Seed: &seed, Player: "ada", Board: board})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	// Drain the session_created event.
	<-ch

	res, err := r.SlideKey(s.ID(), "t")
	if err != nil {
		t.Fatalf("SlideKey error = %v", err)
	}
	if !res.Solved {
		t.Fatal("expected solving slide")
	}

	if store.count() != 1 {
		t.Fatalf("recorded solves = %d, want 1", store.count())
	}
	solve := store.solves[0]
	if solve.Moves != "t" || solve.MoveCount != 1 || solve.Player != "ada" {
		t.Errorf("unexpected solve record: %+v", solve)
	}
	if solve.Width != 2 || solve.Height != 2 {
		t.Errorf("solve shape = %dx%d, want 2x2", solve.Width, solve.Height)
	}

	// move_applied then session_solved.
	types := []string{(<-ch).Type, (<-ch).Type}
	if types[0] != "move_applied" || types[1] != "session_solved" {
		t.Errorf("event order = %v, want [move_applied session_solved]", types)
	}
}

func TestRegistry_NoEventsForIneffectiveSlide(t *testing.T) {
	r, _, hub := newTestRegistry(10, time.Hour)

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	board, err := puzzle.NewBoard(2, 2, []int{1, 2, 0, 3})
	if err != nil {
		t.Fatalf("NewBoard error = %v", err)
	}
	s, err := r.Create(CreateOptions{Board: board})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	<-ch // session_created

	// Tap the blank: nothing moves, nothing broadcast.
	if _, err := r.SlideCell(s.ID(), 0, 1); err != nil {
		t.Fatalf("SlideCell error = %v", err)
	}

	select {
	case ev := <-ch:
		t.Errorf("unexpected event %q for ineffective slide", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistry_Restart(t *testing.T) {
	r, _, _ := newTestRegistry(10, time.Hour)

	seed := puzzle.Seed{5}
	s, err := r.Create(CreateOptions{Width: 3, Height: 3, Seed: &seed})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	before := s.Snapshot().Seed
	if _, err := r.Restart(s.ID()); err != nil {
		t.Fatalf("Restart error = %v", err)
	}
	after := s.Snapshot()

	if after.Seed == before {
		t.Error("restart kept the old seed")
	}
	if after.Width != 3 || after.Height != 3 {
		t.Errorf("restart changed shape to %dx%d", after.Width, after.Height)
	}
	if after.State != StateIdle {
		t.Errorf("state after restart = %s, want idle", after.State)
	}
}

func TestRegistry_SweepExpiresIdleSessions(t *testing.T) {
	r, _, hub := newTestRegistry(10, time.Millisecond)

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s, err := r.Create(CreateOptions{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	<-ch // session_created

	time.Sleep(5 * time.Millisecond)
	r.sweep()

	if r.ActiveCount() != 0 {
		t.Errorf("active count after sweep = %d, want 0", r.ActiveCount())
	}

	select {
	case ev := <-ch:
		if ev.Type != "session_expired" {
			t.Errorf("event type = %q, want session_expired", ev.Type)
		}
		data, ok := ev.Data.(SessionExpiredData)
		if !ok || data.SessionID != s.ID() {
			t.Errorf("unexpected session_expired payload: %#v", ev.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session_expired event")
	}
}
