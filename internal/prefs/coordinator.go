// ABOUTME: Persistence coordinator loading and saving every game's gateway list
// ABOUTME: Failures are isolated per game and surfaced through the store's last error

package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/lists"
)

// Coordinator loads and saves a lists.Store through a ResourceStore.
type Coordinator struct {
	store     *lists.Store
	resources ResourceStore
	targets   map[codec.GameID]Target
	logger    *slog.Logger

	// absent holds the games whose container was missing at their last load.
	// Only these may be saved without a decoded header.
	absent map[codec.GameID]bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTargets overrides the resource name/id of the given games.
func WithTargets(targets map[codec.GameID]Target) Option {
	return func(c *Coordinator) {
		for g, t := range targets {
			c.targets[g] = t
		}
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger.With("component", "prefs")
		}
	}
}

// NewCoordinator creates a coordinator over the given store and resources.
func NewCoordinator(store *lists.Store, resources ResourceStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:     store,
		resources: resources,
		targets:   DefaultTargets(),
		logger:    slog.Default().With("component", "prefs"),
		absent:    make(map[codec.GameID]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the resource the game's container is written to.
func (c *Coordinator) Target(game codec.GameID) (Target, bool) {
	t, ok := c.targets[game]
	return t, ok
}

// Load reads and decodes every game's container. Each game is loaded
// independently; the returned error joins the per-game failures.
func (c *Coordinator) Load(ctx context.Context) error {
	var errs []error
	for _, g := range codec.Games {
		if err := c.loadGame(ctx, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard reloads a single game, dropping its unsaved edits.
func (c *Coordinator) Discard(ctx context.Context, game codec.GameID) error {
	if !game.Valid() {
		return fmt.Errorf("discard: %w: %q", codec.ErrUnknownGame, game)
	}
	return c.loadGame(ctx, game)
}

func (c *Coordinator) loadGame(ctx context.Context, game codec.GameID) error {
	c.store.Reset(game)
	delete(c.absent, game)

	raw, err := c.resources.ReadContainer(ctx, game)
	if errors.Is(err, ErrNotFound) {
		c.absent[game] = true
		c.logger.Debug("no container", "game", game)
		return nil
	}
	if err != nil {
		return c.fail(fmt.Errorf("reading %s container: %w", game, err))
	}

	c.store.SetHasData(game, true)

	header, entries, err := codec.Decode(raw, game)
	if err != nil {
		return c.fail(fmt.Errorf("decoding %s container: %w", game, err))
	}

	c.store.SetHeader(game, header)
	c.store.SetList(game, entries)
	c.logger.Debug("loaded gateways", "game", game, "count", len(entries))
	return nil
}

// Save writes every changed game back to its resource. Every changed game
// is attempted; a nil error means all attempted writes succeeded.
func (c *Coordinator) Save(ctx context.Context) error {
	var errs []error
	for _, g := range codec.Games {
		if !c.store.Changed(g) {
			continue
		}
		if err := c.saveGame(ctx, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveOK is Save reduced to a success flag.
func (c *Coordinator) SaveOK(ctx context.Context) bool {
	return c.Save(ctx) == nil
}

func (c *Coordinator) saveGame(ctx context.Context, game codec.GameID) error {
	header := c.store.Header(game)
	if header == nil {
		if !c.absent[game] {
			return c.fail(fmt.Errorf("refusing to overwrite %s container: %w", game, ErrNotLoaded))
		}
		var err error
		if header, err = codec.EmptyHeader(game); err != nil {
			return c.fail(err)
		}
	}

	data, err := codec.Encode(header, c.store.List(game), game)
	if err != nil {
		return c.fail(fmt.Errorf("encoding %s gateways: %w", game, err))
	}

	target, ok := c.targets[game]
	if !ok {
		return c.fail(fmt.Errorf("no resource target for %s", game))
	}
	if err := c.resources.WriteContainer(ctx, game, target.Name, target.ID, data); err != nil {
		return c.fail(fmt.Errorf("writing %s container: %w", game, err))
	}

	c.store.SetHeader(game, header)
	c.store.ClearChanged(game)
	c.logger.Info("saved gateways", "game", game, "resource", target.Name, "id", target.ID, "bytes", len(data))
	return nil
}

func (c *Coordinator) fail(err error) error {
	c.logger.Error("gateway persistence failed", "error", err)
	c.store.SetLastError(err.Error())
	return err
}
