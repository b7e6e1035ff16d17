package schedule

import (
	"testing"
	"time"

	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/rhythm"
)

const (
	flight = 3000 * time.Millisecond
	floor  = 300 * time.Millisecond
)

func newScheduler() (*Scheduler, *game.Track, *game.Session, *rhythm.Estimator) {
	r := rhythm.NewEstimator(3000 * time.Millisecond)
	track := game.NewTrack(game.DefaultWindows())
	session := &game.Session{}
	return New(flight, floor, r, track, session), track, session, r
}

func at(ms int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

func TestIdleWhenNotPlaying(t *testing.T) {
	s, track, _, _ := newScheduler()
	if p := s.Tick(at(0)); p != nil || track.Len() != 0 {
		t.Fatal("spawned while not playing")
	}
}

func TestSpawnCadence(t *testing.T) {
	s, track, session, _ := newScheduler()
	session.Begin()

	p := s.Tick(at(0))
	if p == nil {
		t.Fatal("first tick should spawn immediately")
	}
	if !p.Target.Equal(at(3000)) {
		t.Fatalf("expected target at 3000ms, got %v", p.Target.Sub(at(0)))
	}
	if s.Tick(at(3000)) != nil {
		t.Fatal("spawned at exactly the interval, expected strictly greater")
	}
	if s.Tick(at(3001)) == nil {
		t.Fatal("expected a spawn after the interval")
	}
	if !s.Last().Equal(at(3001)) {
		t.Fatalf("last spawn not recorded, got %v", s.Last())
	}
	if track.Len() != 2 {
		t.Fatalf("expected 2 pulses, got %d", track.Len())
	}
}

func TestIntervalAdapts(t *testing.T) {
	s, _, session, r := newScheduler()
	session.Begin()
	if i := s.Interval(); i != 3000*time.Millisecond {
		t.Fatalf("expected base interval, got %v", i)
	}

	for i := 0; i < 5; i++ {
		r.Record(1000 * time.Millisecond)
	}
	if i := s.Interval(); i != 1600*time.Millisecond {
		t.Fatalf("expected the blended 1600ms, got %v", i)
	}

	session.Hit(100)
	if i := s.Interval(); i != 1550*time.Millisecond {
		t.Fatalf("expected 1550ms at sync 0.1, got %v", i)
	}
}

func TestIntervalFloor(t *testing.T) {
	s, _, session, r := newScheduler()
	session.Begin()
	for i := 0; i < 10; i++ {
		r.Record(100 * time.Millisecond)
		session.Hit(100)
		session.UpdateFlow()
	}
	if !session.Flow() {
		t.Fatal("expected flow after ten hits")
	}
	// 0.7*100ms + 0.3*3s = 970ms, *0.8 = 776ms, -500ms = 276ms
	if i := s.Interval(); i != floor {
		t.Fatalf("expected the floor %v, got %v", floor, i)
	}
}
