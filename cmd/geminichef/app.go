package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hammamikhairi/geminichef/internal/config"
	"github.com/hammamikhairi/geminichef/internal/display"
	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/engine"
	"github.com/hammamikhairi/geminichef/internal/gemini"
	"github.com/hammamikhairi/geminichef/internal/input"
	"github.com/hammamikhairi/geminichef/internal/logger"
	"github.com/hammamikhairi/geminichef/internal/recipe"
	"github.com/hammamikhairi/geminichef/internal/storage"
)

const (
	name = "geminichef"

	// sampleLatency keeps the loading state visible in offline mode.
	sampleLatency = 800 * time.Millisecond
)

// overridden during build with ldflags
var version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "냉장고 파먹기 AI 레시피: suggest recipes from the ingredients you have",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Gemini API key",
				Sources: cli.EnvVars("GEMINI_API_KEY", "API_KEY"),
			},
			&cli.StringFlag{
				Name:    "model",
				Value:   config.DefaultModel,
				Usage:   "Gemini model name",
				Sources: cli.EnvVars("GEMINI_MODEL"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Value:   config.DefaultBaseURL,
				Usage:   "Generative Language API root",
				Sources: cli.EnvVars("GEMINI_BASE_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: config.DefaultTimeout,
				Usage: "deadline for one generation (0 disables it)",
			},
			&cli.IntFlag{
				Name:  "rate-limit",
				Usage: "maximum API requests per minute (0 disables the limiter)",
			},
			&cli.IntFlag{
				Name:  "recipes",
				Value: config.DefaultRecipeCount,
				Usage: "number of recipes to ask for",
			},
			&cli.FloatFlag{
				Name:  "temperature",
				Usage: "sampling temperature between 0 and 2 (default: the model's own)",
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "serve built-in sample recipes instead of calling the API",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable verbose/debug logging",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "disable all logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: config.DefaultLogFile,
				Usage: `file to write logs to (use "stderr" to log to console)`,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "text",
				Usage: "log record format (text, json)",
			},
		},
		Commands: []*cli.Command{
			suggestCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			collector := input.NewCollector(rt.log)
			ui := display.NewUI(rt.engine, rt.store, collector, rt.log)
			rt.log.Info("starting interactive session")
			return ui.Run(ctx)
		},
	}
}

// configFromCmd resolves the configuration from flags and environment.
func configFromCmd(cmd *cli.Command) config.Config {
	cfg := config.Default()
	cfg.APIKey = cmd.String("api-key")
	cfg.Model = cmd.String("model")
	cfg.BaseURL = cmd.String("base-url")
	cfg.Timeout = cmd.Duration("timeout")
	cfg.RequestsPerMinute = cmd.Int("rate-limit")
	cfg.RecipeCount = cmd.Int("recipes")
	cfg.Offline = cmd.Bool("offline")
	if cmd.IsSet("temperature") {
		t := cmd.Float("temperature")
		cfg.Temperature = &t
	}

	cfg.Log.Level = logger.LevelNormal.String()
	if cmd.Bool("verbose") {
		cfg.Log.Level = logger.LevelVerbose.String()
	}
	if cmd.Bool("quiet") {
		cfg.Log.Level = logger.LevelOff.String()
	}
	cfg.Log.Format = cmd.String("log-format")
	cfg.Log.File = cmd.String("log-file")
	if cfg.Log.File == "stderr" {
		cfg.Log.File = ""
	}
	return cfg
}

// runtime is the wired object graph shared by the commands.
type runtime struct {
	cfg     config.Config
	log     *logger.Logger
	store   *storage.MemoryStore
	engine  *engine.Engine
	closers []io.Closer
}

func (rt *runtime) close() {
	for _, c := range rt.closers {
		_ = c.Close()
	}
}

func setup(cmd *cli.Command) (*runtime, error) {
	cfg := configFromCmd(cmd)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	log, err := rt.openLog(cfg.Log, cmd.Root().ErrWriter)
	if err != nil {
		return nil, err
	}
	rt.log = log

	var service domain.GenerationService
	if cfg.Offline {
		service = recipe.NewSampleService(log, recipe.WithLatency(sampleLatency))
		log.Info("offline mode: serving built-in recipes")
	} else {
		opts := []gemini.ClientOption{
			gemini.WithModel(cfg.Model),
			gemini.WithBaseURL(cfg.BaseURL),
			gemini.WithRateLimit(cfg.RequestsPerMinute),
			// Generation deadlines are enforced by the engine.
			gemini.WithHTTPTimeout(0),
		}
		if cfg.Temperature != nil {
			opts = append(opts, gemini.WithTemperature(*cfg.Temperature))
		}
		client := gemini.NewClient(cfg.APIKey, log, opts...)
		log.Info("using model %s", client.Model())
		service = client
	}

	rt.store = storage.NewMemoryStore(log)
	rt.engine = engine.New(service, rt.store, log,
		engine.WithTimeout(cfg.Timeout),
		engine.WithRecipeCount(cfg.RecipeCount),
	)
	return rt, nil
}

// openLog directs logs to a file by default so the terminal stays clean.
func (rt *runtime) openLog(lc config.LogConfig, fallback io.Writer) (*logger.Logger, error) {
	level, err := logger.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	if fallback == nil {
		fallback = os.Stderr
	}
	out := fallback
	if lc.File != "" {
		if dir := filepath.Dir(lc.File); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(fallback, "warning: could not open log file %s: %v (falling back to stderr)\n", lc.File, err)
		} else {
			out = f
			rt.closers = append(rt.closers, f)
		}
	}

	l := logger.NewWithFormat(level, logger.Format(lc.Format), out)
	// Third-party libraries that use the standard or slog default logger
	// end up in the same place.
	slog.SetDefault(l.Slog())
	return l, nil
}
