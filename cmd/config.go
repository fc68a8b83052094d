package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to the --config path. An existing file is left alone.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("created config file", "path", configPath)
	return nil
}

// ConfigShow prints the configuration bpmx would run with, as TOML, with secrets masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	redacted := config.Redacted()
	if err := shared.WriteConfig(r.output, &redacted); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ConfigEnv lists the environment variables that override the config file.
func (r *Runner) ConfigEnv(ctx context.Context, cmd *cli.Command) error {
	usage, err := shared.EnvUsage()
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", usage)
}
