package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/bpmx/internal/formatter"
	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/desertthunder/bpmx/internal/tasks"
	"github.com/desertthunder/bpmx/internal/ui"
	"github.com/urfave/cli/v3"
)

// BPM resolves the tempo of every track in a playlist and prints them sorted by BPM.
//
// Configuration and credentials are checked before any network request.
func (r *Runner) BPM(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("playlist"))
	if ref == "" {
		return fmt.Errorf("%w: playlist link, URI or ID is required", shared.ErrMissingArgument)
	}

	r.setLogLevel(cmd)

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	strategy := config.Resolver.Strategy
	if s := cmd.String("strategy"); s != "" {
		strategy = s
	}

	if r.needsCredentials(strategy) {
		if err := config.Validate(strategy); err != nil {
			return err
		}
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())

	if err := r.buildServices(ctx, config, strategy); err != nil {
		return err
	}

	resolver, err := tasks.NewResolver(strategy, r.features, r.tempoDB, logger)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(r.errOutput, cmd.Bool("quiet"))
	engine := tasks.NewEngine(r.catalog, resolver, logger)

	logger.Debug("starting run", "playlist", ref, "strategy", strategy, "format", format)
	tracks, err := engine.Run(ctx, ref, printer.Progress)
	if err != nil {
		return err
	}

	resolved := 0
	for _, t := range tracks {
		if t.HasBPM() {
			resolved++
		}
	}
	printer.Summary(resolved, len(tracks))

	data, err := formatter.Render(format, tracks)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("wrote result", "path", path, "tracks", len(tracks))
		return nil
	}

	return r.writeResult(data)
}
