// Package input folds every anticipation channel into one ordered queue.
package input

import (
	"time"
)

type Source uint8

const (
	Pointer Source = iota
	Key
	Voice
)

func (s Source) String() string {
	switch s {
	case Pointer:
		return "pointer"
	case Key:
		return "key"
	case Voice:
		return "voice"
	}
	return "unknown"
}

// Event is a single "anticipate now" signal. The judge never looks at Source.
type Event struct {
	Source Source
	At     time.Time
}
