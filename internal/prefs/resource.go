// ABOUTME: Collaborator contract for reading and writing raw preference containers
// ABOUTME: Also maps each game to the resource name and id it is written under

package prefs

import (
	"context"
	"errors"

	"github.com/2389/gateway-editor/internal/codec"
)

// ErrNotFound is returned by ReadContainer when the game has no container.
var ErrNotFound = errors.New("container not found")

// ErrNotLoaded is returned by Save for a game whose container exists but
// could not be read or decoded. Writing it would replace the real container.
var ErrNotLoaded = errors.New("container was not loaded")

// ResourceStore reads and writes the raw container bytes of each game.
type ResourceStore interface {
	ReadContainer(ctx context.Context, game codec.GameID) ([]byte, error)
	WriteContainer(ctx context.Context, game codec.GameID, name string, resID int, data []byte) error
}

// Target names the resource a game's container is written to.
type Target struct {
	Name string
	ID   int
}

// DefaultTargets are the resource name/id pairs the game clients read.
func DefaultTargets() map[codec.GameID]Target {
	return map[codec.GameID]Target{
		codec.Starcraft: {Name: "Gateways", ID: 128},
		codec.Diablo2:   {Name: "D2 Gateways", ID: 129},
		codec.Warcraft3: {Name: "W3 Gateways", ID: 130},
	}
}
