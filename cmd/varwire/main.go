// Package main is the entry point for the varwire script runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/varwire/internal/config"
	"github.com/dshills/varwire/internal/config/watcher"
	"github.com/dshills/varwire/internal/dump"
	"github.com/dshills/varwire/internal/format"
	"github.com/dshills/varwire/internal/logging"
	"github.com/dshills/varwire/internal/luahost"
	"github.com/dshills/varwire/internal/registry"
	"github.com/dshills/varwire/internal/wire"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	Host       string
	Format     string
	MaxLength  int
	LogLevel   string
	Code       string
	Timeout    time.Duration
	Watch      bool
	Script     string
	Args       []string

	// Out receives the records. Nil means standard output.
	Out io.Writer
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	logging.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !opts.Watch {
		if err := execute(ctx, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := watch(ctx, cfg, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Host, "host", "", "Resolver table: go, lua or auto (default from config)")
	flag.StringVar(&opts.Format, "format", luahost.FormatXML, "Output format (xml, json)")
	flag.IntVar(&opts.MaxLength, "max-len", 0, "Maximum value length (default from config)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Code, "e", "", "Run this Lua code instead of a script file")
	flag.DurationVar(&opts.Timeout, "timeout", luahost.DefaultExecutionTimeout, "Script execution timeout (0 disables)")
	flag.BoolVar(&opts.Watch, "watch", false, "Rerun the script when it or the config changes")
	flag.BoolVar(&opts.Watch, "w", false, "Rerun on change (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "varwire - dump Lua script variables as wire records\n\n")
		fmt.Fprintf(os.Stderr, "Usage: varwire [options] script.lua [args...]\n")
		fmt.Fprintf(os.Stderr, "       varwire [options] -e code\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  varwire -e 'local t = {1, 2}; dump()'\n")
		fmt.Fprintf(os.Stderr, "  varwire -format json script.lua\n")
		fmt.Fprintf(os.Stderr, "  varwire -w -c varwire.toml script.lua\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("varwire %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if opts.Code == "" {
		if len(args) == 0 {
			flag.Usage()
			os.Exit(2)
		}
		opts.Script, args = args[0], args[1:]
	}
	opts.Args = args

	if opts.Watch && opts.Script == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch requires a script file\n")
		os.Exit(2)
	}

	return opts
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.MaxLength > 0 {
		cfg.Wire.MaxLength = opts.MaxLength
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scriptHost resolves the configured host. Scripts are Lua, so "auto"
// without VARWIRE_HOST selects the Lua table.
func scriptHost(cfg *config.Config) (registry.Host, error) {
	h := strings.ToLower(strings.TrimSpace(cfg.Host))
	if (h == "" || h == "auto") && os.Getenv(registry.HostEnv) == "" {
		return registry.HostLua, nil
	}
	return cfg.RegistryHost()
}

func newDumper(cfg *config.Config) (*dump.Dumper, error) {
	host, err := scriptHost(cfg)
	if err != nil {
		return nil, err
	}
	return dump.New(
		dump.WithClassifier(registry.New(host)),
		dump.WithFormatter(format.New(cfg.FormatterOptions()...)),
		dump.WithEncoder(wire.NewEncoder(cfg.EncoderOptions())),
		dump.WithSink(logging.NewZapSink(nil)),
	), nil
}

// execute runs the script once in a fresh state.
func execute(ctx context.Context, cfg *config.Config, opts options) error {
	d, err := newDumper(cfg)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	state, err := luahost.NewState(
		luahost.WithDumper(d),
		luahost.WithFormat(opts.Format),
		luahost.WithExecutionTimeout(opts.Timeout),
		luahost.WithOutput(out),
	)
	if err != nil {
		return err
	}
	defer state.Close()

	state.SetArgs(opts.Args)
	if opts.Script == "" {
		return state.DoString(ctx, opts.Code)
	}
	return state.DoFile(ctx, opts.Script)
}

// watch runs the script, then reruns it whenever the script or the config
// file changes, until ctx is cancelled. A changed config is reloaded; an
// invalid one keeps the previous settings.
func watch(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) error {
	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Watch(opts.Script); err != nil {
		return err
	}
	if opts.ConfigPath != "" {
		if err := w.Watch(opts.ConfigPath); err != nil {
			return err
		}
	}

	changes := make(chan watcher.Event, 1)
	w.OnChange(func(e watcher.Event) {
		select {
		case changes <- e:
		default:
		}
	})
	w.Start(ctx)

	for {
		if err := execute(ctx, cfg, opts); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			logger.Error("script failed", zap.String("script", opts.Script), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case e := <-changes:
			logger.Info("change detected, rerunning", zap.String("path", e.Path), zap.Stringer("op", e.Op))
			if opts.ConfigPath != "" {
				next, err := loadConfig(opts)
				if err != nil {
					logger.Warn("config reload failed, keeping previous settings", zap.Error(err))
				} else {
					cfg = next
				}
			}
		}
	}
}
