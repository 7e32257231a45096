package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordsearch/internal/grid"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession("owner", "", classic, grid.New(&grid.Options{Seed: seed}).Generate)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionSelect(t *testing.T) {
	s := newTestSession(t, 3)
	if len(s.ID) != 16 {
		t.Fatalf("unexpected id %q", s.ID)
	}
	snap := s.Snapshot()
	for i, w := range classic {
		res, after, err := s.Select(pathOf(t, snap.Grid, w))
		if err != nil {
			t.Fatal(err)
		}
		if !res.NewlyFound {
			t.Fatalf("%q not found: %+v", w, res)
		}
		if last := i == len(classic)-1; res.Completed != last || after.Completed != last {
			t.Fatalf("%q: completed=%v snapshot=%v", w, res.Completed, after.Completed)
		}
	}
}

func TestSessionRestartRegenerates(t *testing.T) {
	s := newTestSession(t, 5)
	first := s.Snapshot()
	_, _, _ = s.Select(pathOf(t, first.Grid, "RUST"))
	s.Tick()

	snap, err := s.Restart(true)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Grid == first.Grid {
		t.Fatal("regenerate should install a new grid")
	}
	if len(snap.Found) != 0 || snap.Elapsed != 0 || snap.Phase != PhaseIdle {
		t.Fatalf("state not reset: %+v", snap)
	}
	for _, w := range classic {
		if _, ok := snap.Grid.Find(w); !ok {
			t.Fatalf("%q missing from regenerated grid", w)
		}
	}

	kept, err := s.Restart(false)
	if err != nil {
		t.Fatal(err)
	}
	if kept.Grid != snap.Grid {
		t.Fatal("restart without regenerate should keep the layout")
	}
}

func TestSessionRestartBuilderError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	build := func(words []string) (*grid.Grid, error) {
		calls++
		if calls > 1 {
			return nil, boom
		}
		return grid.New(&grid.Options{Seed: 1}).Generate(words)
	}
	s, err := NewSession("", "", classic, build)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Restart(true); !errors.Is(err, boom) {
		t.Fatalf("want builder error, got %v", err)
	}
}

func TestSessionConcurrentTicks(t *testing.T) {
	s := newTestSession(t, 8)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.Tick()
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	if got := s.Snapshot().Elapsed; got != 200 {
		t.Fatalf("want 200 ticks, got %d", got)
	}
}

func TestSessionIdle(t *testing.T) {
	s := newTestSession(t, 9)
	later := time.Now().Add(time.Hour)
	if s.IdleSince(later) < 59*time.Minute {
		t.Fatal("idle time should grow with the clock")
	}
	s.Touch()
	if s.IdleSince(time.Now()) > time.Minute {
		t.Fatal("touch should reset idle time")
	}
}
