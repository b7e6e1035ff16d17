package score

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal keeps every judgement of the running process in an in-memory
// sqlite database. Nothing outlives the process.
type Journal struct {
	db *sql.DB
}

type Entry struct {
	Session  string
	At       time.Duration // since session start
	Source   string
	Hit      bool
	Accuracy float64
	Points   int
	Streak   int
}

type Summary struct {
	Judgements   int
	Hits         int
	Misses       int
	Points       int
	MeanAccuracy float64
	BestStreak   int
}

func OpenJournal() (*Journal, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("unable to open journal: %w", err)
	}
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)

	initStatement := `
	create table if not exists judgements
	  (
		  id integer not null primary key,
		  session text not null,
		  at_ms integer,
		  source text,
		  hit integer,
		  accuracy real,
		  points integer,
		  streak integer
	  );
	`
	if _, err := db.Exec(initStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Record(e Entry) error {
	hit := 0
	if e.Hit {
		hit = 1
	}
	_, err := j.db.Exec(
		"insert into judgements(session, at_ms, source, hit, accuracy, points, streak) values(?, ?, ?, ?, ?, ?, ?)",
		e.Session, e.At.Milliseconds(), e.Source, hit, e.Accuracy, e.Points, e.Streak,
	)
	if err != nil {
		return fmt.Errorf("unable to record judgement: %w", err)
	}
	return nil
}

func (j *Journal) Summary(session string) (Summary, error) {
	var s Summary
	var mean sql.NullFloat64
	row := j.db.QueryRow(`
	select count(*),
	       coalesce(sum(hit), 0),
	       coalesce(sum(points), 0),
	       avg(case when hit = 1 then accuracy end),
	       coalesce(max(streak), 0)
	  from judgements where session = ?`, session)
	if err := row.Scan(&s.Judgements, &s.Hits, &s.Points, &mean, &s.BestStreak); err != nil {
		return s, fmt.Errorf("unable to summarise session: %w", err)
	}
	s.Misses = s.Judgements - s.Hits
	s.MeanAccuracy = mean.Float64
	return s, nil
}

// Entries returns a session's judgements in the order they were made.
func (j *Journal) Entries(session string) ([]Entry, error) {
	rows, err := j.db.Query(
		"select session, at_ms, source, hit, accuracy, points, streak from judgements where session = ? order by id",
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load judgements: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var ms int64
		var hit int
		if err := rows.Scan(&e.Session, &ms, &e.Source, &hit, &e.Accuracy, &e.Points, &e.Streak); err != nil {
			return nil, fmt.Errorf("unable to read judgement: %w", err)
		}
		e.At = time.Duration(ms) * time.Millisecond
		e.Hit = hit == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
