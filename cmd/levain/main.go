// Levain is a baker's-percentage bread calculator.
//
// Usage:
//
//	levain [--verbose] [--quiet] [--db path] [--presets file]
//	levain recipe --preset focaccia --dough 1000
//	levain levain 102 --ratio 5
//	levain temp 22 22 2 26
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/levain/internal/config"
	"github.com/hammamikhairi/levain/internal/conversation"
	"github.com/hammamikhairi/levain/internal/display"
	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/engine"
	"github.com/hammamikhairi/levain/internal/logger"
	"github.com/hammamikhairi/levain/internal/metrics"
	"github.com/hammamikhairi/levain/internal/recipe"
	"github.com/hammamikhairi/levain/internal/storage"
	"github.com/hammamikhairi/levain/internal/storage/sqlite"
	"github.com/hammamikhairi/levain/internal/validate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags are the persistent command-line overrides for config.Config.
type flags struct {
	verbose    bool
	quiet      bool
	logFile    string
	dbPath     string
	presetFile string
}

// deps is everything a command needs, built once per invocation.
type deps struct {
	cfg      config.Config
	log      *logger.Logger
	engine   *engine.Engine
	presets  *recipe.MemorySource
	store    domain.SnapshotStore
	registry *prometheus.Registry
	closers  []func() error
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	var d *deps

	root := &cobra.Command{
		Use:   "levain",
		Short: "Baker's-percentage bread calculator",
		Long: `Levain scales bread recipes from baker's percentages.

Give it ratios (or a preset) and one anchor: the flour weight, the total
dough weight, or a batch of pieces. It also sizes levain builds and works
out the mixing-water temperature for a target dough temperature.

Run without arguments to start the interactive calculator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			d, err = setup(cmd, f)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if d != nil {
				_ = d.log.Sync()
				d.close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(d)
		},
	}

	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose/debug logging")
	root.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "disable all logging")
	root.PersistentFlags().StringVar(&f.logFile, "log-file", "", "file to write logs to (\"stderr\" logs to the console)")
	root.PersistentFlags().StringVar(&f.dbPath, "db", "", "SQLite file for saved inputs (empty keeps them in memory)")
	root.PersistentFlags().StringVar(&f.presetFile, "presets", "", "YAML preset file merged over the built-ins")

	getDeps := func() *deps { return d }
	root.AddCommand(
		newRecipeCmd(getDeps),
		newLevainCmd(getDeps),
		newTempCmd(getDeps),
		newPresetsCmd(getDeps),
		newHistoryCmd(getDeps),
	)
	return root
}

// setup loads config, applies flag overrides and wires the dependencies.
func setup(cmd *cobra.Command, f flags) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if pf.Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if pf.Changed("presets") {
		cfg.PresetFile = f.presetFile
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if f.verbose {
		level = logger.LevelVerbose
	}
	if f.quiet {
		level = logger.LevelOff
	}

	d := &deps{cfg: cfg}

	// Logs go to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if err := ensureDir(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (logging to stderr)\n", err)
		} else if file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (logging to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = file
			d.closers = append(d.closers, file.Close)
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)
	d.log = logger.New(level, logOut)

	d.presets = recipe.NewMemorySource(d.log)
	if cfg.PresetFile != "" {
		presets, err := recipe.LoadFile(cfg.PresetFile)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("loading presets: %w", err)
		}
		d.presets.Merge(presets)
	}

	if cfg.DBPath == "" {
		d.store = storage.NewMemoryStore(d.log)
	} else {
		if err := ensureDir(cfg.DBPath); err != nil {
			d.close()
			return nil, err
		}
		store, err := sqlite.Open(cfg.DBPath, d.log)
		if err != nil {
			d.close()
			return nil, err
		}
		d.store = store
		d.closers = append(d.closers, store.Close)
	}

	d.registry = prometheus.NewRegistry()
	d.engine = engine.New(d.log,
		engine.WithValidator(validate.New(
			validate.WithHydrationCeiling(cfg.HydrationCeiling),
			validate.WithHydrationLimit(cfg.HydrationLimit),
		)),
		engine.WithRecorder(metrics.New(d.registry)),
		engine.WithScaldingThreshold(cfg.ScaldingAbove),
	)

	d.log.Debug("config: db=%q presets=%q ceiling=%g limit=%g", cfg.DBPath, cfg.PresetFile, cfg.HydrationCeiling, cfg.HydrationLimit)
	return d, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func runInteractive(d *deps) error {
	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &cliApp{
		engine:     d.engine,
		presets:    d.presets,
		store:      d.store,
		parser:     conversation.NewKeywordParser(d.log),
		log:        d.log,
		buildRatio: d.cfg.BuildRatio,
	}
	ui := display.NewUI(app.status)
	app.out = ui
	app.quit = ui.Quit
	app.notifier = conversation.NewCLINotifier(d.log, ui.Printf)

	if d.cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, d.cfg.MetricsAddr, d.registry, d.log); err != nil {
				d.log.Error("metrics: %v", err)
			}
		}()
	}

	if d.cfg.PresetFile != "" {
		path := d.cfg.PresetFile
		go func() {
			err := recipe.Watch(ctx, path, d.log, func(presets []*domain.Preset) {
				d.presets.Merge(presets)
				_ = app.notifier.Notify(ctx, fmt.Sprintf("Reloaded %d presets from %s", len(presets), path))
			})
			if err != nil {
				d.log.Error("watching presets: %v", err)
			}
		}()
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		d.log.Error("display: %v", err)
		return err
	}
	return nil
}
