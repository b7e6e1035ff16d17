package score

import (
	"math"
	"testing"
	"time"
)

func TestJournalSummary(t *testing.T) {
	j, err := OpenJournal()
	if err != nil {
		t.Fatalf("unable to open journal: %v", err)
	}
	defer j.Close()

	entries := []Entry{
		{Session: "a", At: time.Second, Source: "key", Hit: true, Accuracy: 0.2, Points: 20, Streak: 1},
		{Session: "a", At: 2 * time.Second, Source: "voice", Hit: true, Accuracy: 0.6, Points: 60, Streak: 2},
		{Session: "a", At: 3 * time.Second, Source: "pointer", Hit: false, Streak: 0},
		{Session: "b", At: time.Second, Source: "key", Hit: true, Accuracy: 1, Points: 100, Streak: 1},
	}
	for _, e := range entries {
		if err := j.Record(e); err != nil {
			t.Fatalf("unable to record: %v", err)
		}
	}

	s, err := j.Summary("a")
	if err != nil {
		t.Fatalf("unable to summarise: %v", err)
	}
	if s.Judgements != 3 || s.Hits != 2 || s.Misses != 1 || s.Points != 80 || s.BestStreak != 2 {
		t.Log("summary", s)
		t.Fail()
	}
	if math.Abs(s.MeanAccuracy-0.4) > 1e-9 {
		t.Fatalf("expected mean accuracy 0.4, got %v", s.MeanAccuracy)
	}

	got, err := j.Entries("a")
	if err != nil {
		t.Fatalf("unable to load entries: %v", err)
	}
	if len(got) != 3 || got[1].Source != "voice" || got[1].At != 2*time.Second || got[2].Hit {
		t.Log("entries", got)
		t.Fail()
	}
}

func TestJournalEmptySession(t *testing.T) {
	j, err := OpenJournal()
	if err != nil {
		t.Fatalf("unable to open journal: %v", err)
	}
	defer j.Close()

	s, err := j.Summary("nobody")
	if err != nil {
		t.Fatalf("unable to summarise: %v", err)
	}
	if s != (Summary{}) {
		t.Fatalf("expected an empty summary, got %+v", s)
	}
}
