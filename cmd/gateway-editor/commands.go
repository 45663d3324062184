// ABOUTME: gateway-editor subcommands: list, edit, import/export, history and report
// ABOUTME: Edits go through lists.Store and are persisted by prefs.Coordinator

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/prefs"
	"github.com/2389/gateway-editor/internal/report"
)

func (a *app) cmdList(args []string) error {
	games := codec.Games
	if len(args) > 0 {
		g, err := codec.ParseGameID(args[0])
		if err != nil {
			return err
		}
		games = []codec.GameID{g}
	}

	for i, g := range games {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		a.printGame(g)
	}
	return nil
}

func (a *app) printGame(g codec.GameID) {
	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Fprint(a.out, g.Title())
	switch {
	case a.store.Changed(g):
		color.New(color.FgYellow).Fprint(a.out, " (unsaved)")
	case !a.store.HasData(g):
		gray.Fprint(a.out, " (no preferences)")
	}
	fmt.Fprintln(a.out)

	entries := a.store.List(g)
	if len(entries) == 0 {
		gray.Fprintln(a.out, "  no gateways")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tNAME\tADDRESS\tDEFAULT")
	fmt.Fprintln(w, "  -\t----\t-------\t-------")
	for i, e := range entries {
		def := ""
		if e.Default {
			def = "*"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", i, e.Name, e.Address, def)
	}
	w.Flush()
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	isDefault := false
	var pos []string
	for _, arg := range args {
		if arg == "--default" {
			isDefault = true
			continue
		}
		pos = append(pos, arg)
	}
	if len(pos) != 3 {
		return fmt.Errorf("usage: add <game> <name> <address> [--default]")
	}

	game, err := codec.ParseGameID(pos[0])
	if err != nil {
		return err
	}

	a.store.AddEntry(game, codec.NewEntry(pos[1], pos[2], isDefault))
	return a.saveAndShow(ctx, game)
}

func (a *app) cmdIndexed(ctx context.Context, cmd string, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: %s <game> <index>", cmd)
	}
	game, err := codec.ParseGameID(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[1], err)
	}

	var changed bool
	switch cmd {
	case "remove":
		changed = a.store.RemoveEntryAt(game, index)
	case "default":
		changed = a.store.SetDefaultAt(game, index)
	case "up":
		changed = a.store.MoveUpFrom(game, index)
	case "down":
		changed = a.store.MoveDownFrom(game, index)
	}

	if !changed {
		color.New(color.FgHiBlack).Fprintf(a.out, "nothing to do: %s has no movable gateway at %d\n\n", game.Title(), index)
		a.printGame(game)
		return nil
	}
	return a.saveAndShow(ctx, game)
}

func (a *app) saveAndShow(ctx context.Context, game codec.GameID) error {
	if !a.store.AnyChanged() {
		fmt.Fprintln(a.out, "no unsaved changes")
		a.printGame(game)
		return nil
	}
	if err := a.coord.Save(ctx); err != nil {
		a.printGame(game)
		return errors.New(a.store.LastError())
	}
	color.New(color.FgGreen).Fprint(a.out, "✓ ")
	fmt.Fprintf(a.out, "saved %s\n\n", game.Title())
	a.printGame(game)
	return nil
}

func (a *app) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: import <game> <file>")
	}
	game, err := codec.ParseGameID(args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}
	return a.replaceContainer(ctx, game, data)
}

// replaceContainer validates raw bytes, writes them as the game's container
// and reloads the game.
func (a *app) replaceContainer(ctx context.Context, game codec.GameID, data []byte) error {
	_, entries, err := codec.Decode(data, game)
	if err != nil {
		return err
	}

	target, ok := a.coord.Target(game)
	if !ok {
		return fmt.Errorf("no resource target for %s", game)
	}
	if err := a.res.WriteContainer(ctx, game, target.Name, target.ID, data); err != nil {
		return fmt.Errorf("writing %s container: %w", game, err)
	}
	if err := a.coord.Discard(ctx, game); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprint(a.out, "✓ ")
	fmt.Fprintf(a.out, "imported %d gateways for %s\n\n", len(entries), game.Title())
	a.printGame(game)
	return nil
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: export <game> <file>")
	}
	game, err := codec.ParseGameID(args[0])
	if err != nil {
		return err
	}

	data, err := a.res.ReadContainer(ctx, game)
	if errors.Is(err, prefs.ErrNotFound) {
		return fmt.Errorf("%s has no container", game.Title())
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	fmt.Fprintf(a.out, "wrote %d bytes to %s\n", len(data), args[1])
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: history <game>")
	}
	game, err := codec.ParseGameID(args[0])
	if err != nil {
		return err
	}

	revs, err := a.res.Revisions(ctx, game, 20)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		color.New(color.FgHiBlack).Fprintf(a.out, "no earlier containers for %s\n", game.Title())
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  REVISION\tRESOURCE\tBYTES\tREPLACED")
	fmt.Fprintln(w, "  --------\t--------\t-----\t--------")
	for _, r := range revs {
		fmt.Fprintf(w, "  %s\t%s (%d)\t%d\t%s\n", r.ID, r.Name, r.ResID, r.Size, r.ReplacedAt.Local().Format("Jan 02 15:04:05"))
	}
	return w.Flush()
}

func (a *app) cmdRestore(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: restore <revision-id>")
	}

	game, data, err := a.res.RevisionData(ctx, args[0])
	if errors.Is(err, prefs.ErrNotFound) {
		return fmt.Errorf("unknown revision %s", args[0])
	}
	if err != nil {
		return err
	}
	return a.replaceContainer(ctx, game, data)
}

func (a *app) cmdReport(args []string) error {
	if len(args) > 0 && args[0] == "--html" {
		html, err := report.HTML(a.store)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, html)
		return nil
	}
	fmt.Fprint(a.out, report.Markdown(a.store))
	return nil
}
