// Package app provides high-level application logic for founder commands.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/oconnor663/founder/internal/config"
	ferrors "github.com/oconnor663/founder/internal/errors"
	"github.com/oconnor663/founder/internal/history"
	"github.com/oconnor663/founder/internal/logging"
	"github.com/oconnor663/founder/internal/paths"
	"github.com/oconnor663/founder/internal/picker"
	"github.com/oconnor663/founder/internal/runner"
)

// File names inside the data directory.
const (
	HistoryFile = "history"
	QueriesFile = "queries"
)

// Env is everything a command needs from the process environment.
// It is built once at startup and passed down explicitly.
type Env struct {
	Home        string
	Cwd         string
	DataDir     string
	HistoryPath string
	QueriesPath string
	ConfigPath  string // "" when running on defaults

	Config     *config.Config
	Logger     *zap.Logger
	Store      *history.Store
	Normalizer *paths.Normalizer

	Stdout io.Writer
}

// EnvOptions are the startup inputs that come from flags.
type EnvOptions struct {
	ConfigPath string // Explicit --config; must exist when set
	Verbose    bool
}

// NewEnv loads configuration and resolves directories for this process.
func NewEnv(opts EnvOptions) (*Env, error) {
	var cfg *config.Config
	var err error
	configPath := opts.ConfigPath

	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		configPath = config.DetectConfigPath()
		cfg, err = config.LoadWithDefaults()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, opts.Verbose)
	if err != nil {
		return nil, err
	}

	home, err := paths.HomeDir()
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w: %w", ferrors.ErrEnvironment, err)
	}

	dataDir := cfg.History.Dir
	if dataDir == "" {
		dataDir, err = paths.DataDir(home)
		if err != nil {
			return nil, err
		}
	}

	env := Assemble(cfg, home, cwd, dataDir, logger)
	env.ConfigPath = configPath
	return env, nil
}

// Assemble builds an Env from already resolved parts.
func Assemble(cfg *config.Config, home, cwd, dataDir string, logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	historyPath := filepath.Join(dataDir, HistoryFile)

	return &Env{
		Home:        home,
		Cwd:         cwd,
		DataDir:     dataDir,
		HistoryPath: historyPath,
		QueriesPath: filepath.Join(dataDir, QueriesFile),
		Config:      cfg,
		Logger:      logger,
		Store: history.NewStore(historyPath, history.Options{
			MaxEntries: cfg.History.MaxEntries,
			Logger:     logger,
		}),
		Normalizer: paths.NewNormalizer(home),
		Stdout:     os.Stdout,
	}
}

// Scanner returns the configured live scanner, rooted at the working directory.
func (e *Env) Scanner() runner.Scanner {
	sc := e.Config.Scanner
	if sc.Command == config.Builtin {
		return runner.NewWalkScanner(e.Cwd, runner.WithLogger(e.Logger))
	}
	return runner.NewCommandScanner(sc.Command,
		runner.WithArgs(sc.Args...),
		runner.WithHiddenFlag(sc.HiddenFlag),
		runner.WithDir(e.Cwd),
		runner.WithLogger(e.Logger),
	)
}

// Selector returns the configured interactive selector.
func (e *Env) Selector(tmux bool) runner.Selector {
	command := e.Config.SelectorCommand(tmux)
	if command == config.Builtin {
		return picker.New(picker.WithLogger(e.Logger))
	}
	return runner.NewFzfSelector(command,
		runner.WithArgs(e.Config.Selector.Args...),
		runner.WithDir(e.Cwd),
		runner.WithLogger(e.Logger),
	)
}
