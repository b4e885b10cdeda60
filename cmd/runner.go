package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/services"
	"github.com/desertthunder/songman/internal/shared"
	"github.com/desertthunder/songman/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	api        services.SongAPI
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.CatalogEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	API        services.SongAPI
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if r.api != nil {
		r.engine = tasks.NewCatalogEngine(r.api, tasks.EngineOpts{Logger: r.logger})
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, healthCommand, songsCommand, exportCommand, importCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Base URL of a running songman server",
			Sources: cli.EnvVars("SONGMAN_API_URL"),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// configure loads configuration before any command runs.
//
// Precedence, lowest first: embedded defaults, config file, environment, global flags.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if v := cmd.String("api-url"); v != "" {
		config.Client.BaseURL = v
	}
	if v := cmd.String("log-level"); v != "" {
		config.Log.Level = v
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}
	if err := shared.SetLogLevelString(r.logger, config.Log.Level); err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.config = config
	if r.api == nil {
		r.SetAPI(r.newSongClient())
	}
	return ctx, nil
}

// loadConfig reads path when it exists, falling back to defaults, then applies the environment.
func (r *Runner) loadConfig(path string) (*shared.Config, error) {
	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if config, err = shared.LoadConfig(path); err != nil {
			return nil, err
		}
		r.logger.Debug("loaded config", "path", path)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *Runner) newSongClient() *services.SongClient {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: time.Duration(r.config.Client.TimeoutSeconds) * time.Second}
	}
	return services.NewSongClient(services.NewAPIService(r.config.Client.BaseURL, client))
}

// SetAPI replaces the song API and the engine built on it.
func (r *Runner) SetAPI(api services.SongAPI) {
	r.api = api
	r.engine = tasks.NewCatalogEngine(api, tasks.EngineOpts{Logger: r.logger})
}

// SetLogger replaces the logger used by commands.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.api != nil {
		r.engine = tasks.NewCatalogEngine(r.api, tasks.EngineOpts{Logger: logger})
	}
}

func (r *Runner) requireAPI() error {
	if r.api == nil {
		return fmt.Errorf("%w: song API client not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// drainProgress prints updates until ch is closed; the returned channel closes once it has.
func (r *Runner) drainProgress(ch <-chan tasks.ProgressUpdate, format func(tasks.ProgressUpdate) string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range ch {
			if line := format(update); line != "" {
				r.writePlain("%s\n", line)
			}
		}
	}()
	return done
}
