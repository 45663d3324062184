// ABOUTME: Entry point for gateway-editor, a Battle.net gateway list editor
// ABOUTME: Loads the game containers, applies one edit, saves and prints the result

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/gateway-editor/internal/config"
	"github.com/2389/gateway-editor/internal/lists"
	"github.com/2389/gateway-editor/internal/prefs"
	"github.com/2389/gateway-editor/internal/resource"
)

// Version is set by goreleaser at build time.
var version = "dev"

// getConfigPath returns the path to the config file, or "" if none exists.
// Priority: GATEWAY_EDITOR_CONFIG env var > XDG_CONFIG_HOME/gateway-editor/config.{yaml,toml}
// > ~/.config/gateway-editor/config.{yaml,toml}
func getConfigPath() string {
	if envPath := os.Getenv("GATEWAY_EDITOR_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	for _, name := range []string{"config.yaml", "config.toml"} {
		p := filepath.Join(configDir, "gateway-editor", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// getDataPath returns the path to the gateway-editor data directory.
// Priority: XDG_DATA_HOME/gateway-editor > ~/.local/share/gateway-editor
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "gateway-editor")
}

func loadConfig() (*config.Config, error) {
	path := getConfigPath()
	if path == "" {
		cfg := config.Default()
		cfg.Storage.Path = filepath.Join(getDataPath(), "containers.db")
		return cfg, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func printUsage() {
	fmt.Println("Usage: gateway-editor <command> [args]")
	fmt.Println()
	fmt.Println("Games: starcraft (sc), diablo2 (d2), warcraft3 (w3)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list [game]                         Show gateway lists")
	fmt.Println("  add <game> <name> <address> [--default]")
	fmt.Println("                                      Append a gateway")
	fmt.Println("  remove <game> <index>               Remove a gateway")
	fmt.Println("  default <game> <index>              Make a gateway the default")
	fmt.Println("  up <game> <index>                   Move a gateway up")
	fmt.Println("  down <game> <index>                 Move a gateway down")
	fmt.Println("  import <game> <file>                Replace a container with raw bytes from file")
	fmt.Println("  export <game> <file>                Write a container's raw bytes to file")
	fmt.Println("  history <game>                      List replaced containers")
	fmt.Println("  restore <revision-id>               Restore a replaced container")
	fmt.Println("  report [--html]                     Print all lists as Markdown or HTML")
	fmt.Printf("\nversion: %s\n", version)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	a, err := openApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = a.run(ctx, cmd, os.Args[2:])
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// app wires the container store, the list store and the coordinator for
// one command invocation.
type app struct {
	res    *resource.SQLiteStore
	store  *lists.Store
	coord  *prefs.Coordinator
	logger *slog.Logger
	out    io.Writer
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	res, err := resource.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening container store: %w", err)
	}
	if cfg.Storage.BusyTimeout > 0 {
		if err := res.SetBusyTimeout(cfg.Storage.BusyTimeout); err != nil {
			res.Close()
			return nil, err
		}
	}

	store := lists.New()
	coord := prefs.NewCoordinator(store, res,
		prefs.WithTargets(cfg.Targets()),
		prefs.WithLogger(logger),
	)

	a := &app{
		res:    res,
		store:  store,
		coord:  coord,
		logger: logger,
		out:    out,
	}

	// A broken container for one game must not block editing the others.
	if err := coord.Load(ctx); err != nil {
		fmt.Fprintf(out, "%s %s\n\n", color.YellowString("warning:"), store.LastError())
		store.ClearLastError()
	}

	return a, nil
}

func (a *app) Close() error {
	return a.res.Close()
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.cmdList(args)
	case "add":
		return a.cmdAdd(ctx, args)
	case "remove", "default", "up", "down":
		return a.cmdIndexed(ctx, cmd, args)
	case "import":
		return a.cmdImport(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	case "history":
		return a.cmdHistory(ctx, args)
	case "restore":
		return a.cmdRestore(ctx, args)
	case "report":
		return a.cmdReport(args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
