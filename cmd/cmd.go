// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strings"

	"github.com/desertthunder/bpmx/internal/formatter"
	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/urfave/cli/v3"
)

var strategies = []string{shared.StrategyFeatures, shared.StrategySearch}

// rootCommand is the bpmx entry point: bpmx [flags] <playlist>
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "bpmx",
		Usage:     "Print the BPM of every track in a Spotify playlist",
		UsageText: "bpmx [--format table|csv|json] [--strategy features|search] <playlist link, URI or ID>",
		Version:   "0.1.0",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "playlist",
				UsageText: "Spotify playlist link, spotify:playlist: URI, or bare ID",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "format",
				Aliases:   []string{"f"},
				Usage:     "Output format (" + formatter.FormatNames() + ")",
				Value:     string(formatter.FormatTable),
				Validator: validateFormat,
			},
			&cli.StringFlag{
				Name:      "strategy",
				Aliases:   []string{"s"},
				Usage:     "Tempo source (" + strings.Join(strategies, ", ") + "), overrides the config file",
				Validator: validateStrategy,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the result to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug details to stderr",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors and hide progress",
			},
		},
		Commands: r.register(),
		Action:   r.BPM,
	}
}

// configCommand handles the configuration file and environment
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage bpmx configuration",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example config file to the --config path",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration with secrets masked",
				Action: r.ConfigShow,
			},
			{
				Name:   "env",
				Usage:  "List the environment variables bpmx reads",
				Action: r.ConfigEnv,
			},
		},
	}
}

func validateFormat(s string) error {
	_, err := formatter.ParseFormat(s)
	return err
}

func validateStrategy(s string) error {
	for _, name := range strategies {
		if s == name {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown strategy %q (want one of %s)", shared.ErrInvalidFlag, s, strings.Join(strategies, ", "))
}
