// package tasks implements the playlist tempo pipeline: collect tracks, resolve tempos, sort.
//
// The core abstraction is Engine, which runs the pipeline against a [services.Catalog] and a [TempoResolver].
// Operations emit progress updates through a [ProgressFunc] for status reporting on stderr.
package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/services"
	"github.com/desertthunder/bpmx/internal/shared"
)

// Engine runs the full lookup for one playlist.
type Engine struct {
	catalog  services.Catalog
	resolver TempoResolver
	logger   *log.Logger
}

// NewEngine creates an Engine. A nil logger discards log output.
func NewEngine(catalog services.Catalog, resolver TempoResolver, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{catalog: catalog, resolver: resolver, logger: logger}
}

// Run collects every track of the playlist behind ref, resolves tempos and returns the tracks sorted by BPM.
//
// ref may be a playlist link, a URI or a bare ID. Errors from the catalog, or a failed batch lookup, abort the run
// and no tracks are returned.
func (e *Engine) Run(ctx context.Context, ref string, progress ProgressFunc) ([]models.Track, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if e.resolver == nil {
		return nil, fmt.Errorf("%w: tempo resolver not initialized", shared.ErrServiceUnavailable)
	}

	playlistID := shared.ExtractPlaylistID(ref)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: empty playlist reference", shared.ErrMissingArgument)
	}
	e.logger.Debug("resolved playlist reference", "ref", ref, "id", playlistID, "strategy", e.resolver.Name())

	tracks, err := CollectTracks(ctx, e.catalog, playlistID, e.resolver.RequiresID(), progress)
	if err != nil {
		return nil, err
	}
	progress.send(foundTracksUpdate(len(tracks)))

	if err := e.resolver.Resolve(ctx, tracks, progress); err != nil {
		return nil, err
	}

	progress.send(sortUpdate(len(tracks)))
	SortByBPM(tracks)

	resolved := 0
	for _, t := range tracks {
		if t.HasBPM() {
			resolved++
		}
	}
	e.logger.Debug("resolution complete", "tracks", len(tracks), "resolved", resolved)

	return tracks, nil
}
