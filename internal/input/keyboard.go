package input

import (
	"github.com/eiannone/keyboard"
)

type Command uint8

const (
	None Command = iota
	Anticipate
	Quit
)

// FromKey maps a terminal key press to a command and, for Anticipate, the
// channel it stands for. 'p' stands in for a pointer tap.
func FromKey(k keyboard.KeyEvent) (Command, Source) {
	switch k.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Quit, Key
	case keyboard.KeySpace, keyboard.KeyEnter:
		return Anticipate, Key
	}
	switch k.Rune {
	case ' ':
		return Anticipate, Key
	case 'p', 'P':
		return Anticipate, Pointer
	case 'q', 'Q':
		return Quit, Key
	}
	return None, Key
}
