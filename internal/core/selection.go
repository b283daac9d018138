package core

import "strings"

// MenuSelection is a validated main-menu choice.
type MenuSelection rune

const (
	SelectNewGame  MenuSelection = 'n'
	SelectLoadGame MenuSelection = 'l'
	SelectOptions  MenuSelection = 'o'
	SelectQuit     MenuSelection = 'q'
)

// ParseSelection lower-cases raw input and accepts exactly one of n, l, o, q.
// Anything else, including surrounding whitespace or extra characters, is
// rejected.
func ParseSelection(raw string) (MenuSelection, bool) {
	switch strings.ToLower(raw) {
	case "n":
		return SelectNewGame, true
	case "l":
		return SelectLoadGame, true
	case "o":
		return SelectOptions, true
	case "q":
		return SelectQuit, true
	}
	return 0, false
}

// String returns the selection as its single lower-case character.
func (m MenuSelection) String() string {
	return string(rune(m))
}
