package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"runtime/pprof"

	// note: if cmd/gen/version.go is stale, run 'go generate ./cmd'
	"github.com/MobRulesGames/isomap/cmd/gen"
	"github.com/MobRulesGames/isomap/config"
	"github.com/MobRulesGames/isomap/logging"
	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/MobRulesGames/isomap/termview"
	"github.com/MobRulesGames/memory"
)

//go:generate go run github.com/MobRulesGames/isomap/tools/genversion/cmd ../.git/HEAD ./gen/version.go

type options struct {
	configPath   string
	mapPath      string
	restorePath  string
	save         bool
	snapshotPath string
	list         bool
	view         bool
	watch        bool
	version      bool
	trace        bool
	cpuProfile   string
}

func parseFlags(argv []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(filepath.Base(argv[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.mapPath, "map", "", "map file to load; overrides map.path")
	fs.StringVar(&opts.restorePath, "restore", "", "load this snapshot instead of a map file")
	fs.BoolVar(&opts.save, "save", false, "save a snapshot of the loaded map")
	fs.StringVar(&opts.snapshotPath, "snapshot", "", "where -save writes; defaults to the snapshot dir")
	fs.BoolVar(&opts.list, "list", false, "list the snapshots in the index")
	fs.BoolVar(&opts.view, "view", false, "preview the map in the terminal; overrides view.enabled")
	fs.BoolVar(&opts.watch, "watch", false, "reload the map file whenever it changes")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.BoolVar(&opts.trace, "trace", false, "log every object while loading the map")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile here")
	if err := fs.Parse(argv[1:]); err != nil {
		return opts, err
	}
	if fs.NArg() != 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func ensureDirectory(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

func openLogFile(logDir string) (*os.File, error) {
	logFileName := filepath.Join(logDir, "isomap.log")

	err := ensureDirectory(logFileName)
	if err != nil {
		return nil, fmt.Errorf("couldn't create dir for %q: %w", logFileName, err)
	}

	f, err := os.Create(logFileName)
	if err != nil {
		return nil, fmt.Errorf("couldn't os.Create %q: %w", logFileName, err)
	}
	return f, nil
}

func onPanic(recoveredValue interface{}) {
	stack := debug.Stack()
	logging.Error("PANIC", "val", recoveredValue, "stack", string(stack))
	fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", recoveredValue, stack)
}

// Main runs the isomap command line tool and exits the process on failure.
func Main(argv []string) {
	defer func() {
		if r := recover(); r != nil {
			onPanic(r)
			panic(r)
		}
	}()

	err := run(argv, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logging.Error("isomap failed", "err", err)
		fmt.Fprintf(os.Stderr, "isomap: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(argv, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, gen.Version())
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("couldn't load config: %w", err)
	}
	if opts.mapPath != "" {
		cfg.Map.Path = opts.mapPath
	}
	if opts.view {
		cfg.View.Enabled = true
	}

	// Ignore the returned 'undo' func; the level holds for the whole run.
	_ = logging.SetLogLevel(logging.ParseLevel(cfg.LogLevel))
	if cfg.LogDir != "" {
		logFile, err := openLogFile(cfg.LogDir)
		if err != nil {
			logging.Warn("logging to stderr instead", "err", err)
		} else {
			defer logFile.Close()
			undo := logging.Redirect(io.MultiWriter(stderr, logFile))
			defer undo()
		}
	}
	logging.Info("version", "version", gen.Version())

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("couldn't create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("couldn't start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if opts.list {
		return listSnapshots(cfg, stdout)
	}

	var m *tilemap.Map
	load := func() {
		if opts.restorePath != "" {
			m, err = restoreSnapshot(cfg, opts.restorePath)
		} else {
			m, err = loadMap(cfg)
		}
	}
	if opts.trace {
		logging.TraceBracket(load)
	} else {
		load()
	}
	if err != nil {
		return err
	}
	logging.Debug("memory", "allocations", memory.TotalAllocations())

	if opts.save {
		if err := saveSnapshot(cfg, snapshotTarget(opts, cfg), m); err != nil {
			return err
		}
	}

	if cfg.View.Enabled {
		if err := termview.Show(m); err != nil {
			return fmt.Errorf("couldn't open terminal view: %w", err)
		}
	}

	if opts.watch {
		if opts.restorePath != "" || cfg.Map.Path == "" {
			return errors.New("-watch needs a map file")
		}
		return watchMap(cfg.Map.Path, nil, func() {
			reloadMap(cfg, opts)
		})
	}
	return nil
}

// reloadMap loads the watched map file again. A file that fails to load is
// logged and otherwise ignored; the watch carries on.
func reloadMap(cfg config.Config, opts options) {
	reloaded, err := loadMap(cfg)
	if err != nil {
		logging.Warn("reload failed; keeping the previous map", "path", cfg.Map.Path, "err", err)
		return
	}
	if opts.save {
		if err := saveSnapshot(cfg, snapshotTarget(opts, cfg), reloaded); err != nil {
			logging.Warn("couldn't save snapshot", "err", err)
		}
	}
}

func snapshotTarget(opts options, cfg config.Config) string {
	if opts.snapshotPath != "" {
		return opts.snapshotPath
	}
	return cfg.SnapshotPath()
}
