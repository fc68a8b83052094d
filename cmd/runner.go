package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bpmx/internal/services"
	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultEnvPath = ".env"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Services left nil are built from the resolved configuration when a command needs them.
type Runner struct {
	config     *shared.Config
	envPath    string
	catalog    services.Catalog
	features   services.FeatureSource
	tempoDB    services.TempoDatabase
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	errOutput  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // Skips file and environment resolution when set
	EnvPath    string         // .env file to load, defaults to .env in the working directory
	Catalog    services.Catalog
	Features   services.FeatureSource
	TempoDB    services.TempoDatabase
	HTTPClient *http.Client // Defaults to a client with the configured timeout
	Logger     *log.Logger
	Output     io.Writer // Formatted results
	ErrOutput  io.Writer // Progress lines
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.EnvPath == "" {
		opts.EnvPath = defaultEnvPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	return &Runner{
		config:     opts.Config,
		envPath:    opts.EnvPath,
		catalog:    opts.Catalog,
		features:   opts.Features,
		tempoDB:    opts.TempoDB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		errOutput:  opts.ErrOutput,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){configCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the injected config or resolves one from configPath, the .env file and the environment.
func (r *Runner) loadConfig(configPath string) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	config, err := shared.ResolveConfig(configPath, r.envPath)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("configuration resolved", "path", configPath, "strategy", config.Resolver.Strategy)
	return config, nil
}

func (r *Runner) client(config *shared.Config) *http.Client {
	if r.httpClient != nil {
		return r.httpClient
	}
	return &http.Client{Timeout: config.HTTP.Timeout}
}

// buildServices fills in whichever collaborators were not injected. Only the tempo database
// is skipped for the features strategy, since it needs its own credentials.
func (r *Runner) buildServices(ctx context.Context, config *shared.Config, strategy string) error {
	if r.catalog == nil || (strategy == shared.StrategyFeatures && r.features == nil) {
		spotify, err := services.NewSpotifyService(ctx, config.Credentials.Spotify, r.client(config))
		if err != nil {
			return err
		}
		if r.catalog == nil {
			r.catalog = spotify
		}
		if r.features == nil {
			r.features = spotify
		}
	}

	if strategy == shared.StrategySearch && r.tempoDB == nil {
		songBPM, err := services.NewSongBPMService(config.Credentials.GetSongBPM, r.client(config))
		if err != nil {
			return err
		}
		r.tempoDB = songBPM
	}

	return nil
}

// needsCredentials reports whether any service for strategy still has to be built from configuration.
func (r *Runner) needsCredentials(strategy string) bool {
	switch {
	case r.catalog == nil:
		return true
	case strategy == shared.StrategyFeatures:
		return r.features == nil
	case strategy == shared.StrategySearch:
		return r.tempoDB == nil
	default:
		return true
	}
}

func (r *Runner) setLogLevel(cmd *cli.Command) {
	switch {
	case cmd.Bool("quiet"):
		shared.SetLogLevel(r.logger, log.ErrorLevel)
	case cmd.Bool("verbose"):
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
}

// writeResult writes a rendered payload followed by a newline.
func (r *Runner) writeResult(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
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
