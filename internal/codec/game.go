// ABOUTME: Game identifiers and the per-game binary layout table
// ABOUTME: Layouts are plain data consumed by the generic Decode/Encode routines

package codec

import (
	"fmt"
	"strings"
)

// GameID identifies one of the supported titles.
type GameID string

const (
	Starcraft  GameID = "starcraft"
	Diablo2    GameID = "diablo2"
	Warcraft3  GameID = "warcraft3"
	defaultBit byte   = 0x01
)

// Games lists every supported title in load/save order.
var Games = []GameID{Starcraft, Diablo2, Warcraft3}

// Layout describes the binary shape of one game's container.
type Layout struct {
	HeaderLen   int
	CountWidth  int // 2 or 4 bytes
	NameWidth   int
	AddrWidth   int
	Stride      int
	DefaultMask byte
}

// ReservedLen is the number of trailing bytes after the flag byte.
func (l Layout) ReservedLen() int {
	return l.Stride - l.NameWidth - l.AddrWidth - 1
}

// flagOffset is the position of the flag byte inside a record.
func (l Layout) flagOffset() int {
	return l.NameWidth + l.AddrWidth
}

var layouts = map[GameID]Layout{
	Starcraft: {HeaderLen: 4, CountWidth: 2, NameWidth: 32, AddrWidth: 32, Stride: 68, DefaultMask: defaultBit},
	Diablo2:   {HeaderLen: 8, CountWidth: 2, NameWidth: 32, AddrWidth: 64, Stride: 104, DefaultMask: defaultBit},
	Warcraft3: {HeaderLen: 16, CountWidth: 4, NameWidth: 64, AddrWidth: 64, Stride: 144, DefaultMask: defaultBit},
}

// LayoutFor returns the layout of the given game.
func LayoutFor(game GameID) (Layout, error) {
	l, ok := layouts[game]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownGame, game)
	}
	return l, nil
}

// Valid reports whether the id names a supported game.
func (g GameID) Valid() bool {
	_, ok := layouts[g]
	return ok
}

// Title is the human readable name of the game.
func (g GameID) Title() string {
	switch g {
	case Starcraft:
		return "StarCraft"
	case Diablo2:
		return "Diablo II"
	case Warcraft3:
		return "Warcraft III"
	default:
		return string(g)
	}
}

// ParseGameID accepts the full id or the short aliases sc, d2 and w3.
func ParseGameID(s string) (GameID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "starcraft", "sc":
		return Starcraft, nil
	case "diablo2", "d2":
		return Diablo2, nil
	case "warcraft3", "w3", "war3":
		return Warcraft3, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

// EmptyHeader returns a zeroed header sized for the game's layout. It is used
// when a container is written for a game that had none.
func EmptyHeader(game GameID) ([]byte, error) {
	l, err := LayoutFor(game)
	if err != nil {
		return nil, err
	}
	return make([]byte, l.HeaderLen), nil
}
