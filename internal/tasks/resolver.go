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

// TempoResolver attaches a BPM to every track of a collected playlist.
type TempoResolver interface {
	// Name is the strategy name used on the command line.
	Name() string

	// RequiresID reports whether tracks must carry a catalog ID to be resolvable.
	RequiresID() bool

	// Resolve sets BPM on each track in place.
	Resolve(ctx context.Context, tracks []models.Track, progress ProgressFunc) error
}

// NewResolver selects a resolver by strategy name.
func NewResolver(strategy string, features services.FeatureSource, tempoDB services.TempoDatabase, logger *log.Logger) (TempoResolver, error) {
	switch strategy {
	case shared.StrategyFeatures:
		if features == nil {
			return nil, fmt.Errorf("%w: audio feature source not initialized", shared.ErrServiceUnavailable)
		}
		return NewFeatureResolver(features), nil
	case shared.StrategySearch:
		if tempoDB == nil {
			return nil, fmt.Errorf("%w: tempo database not initialized", shared.ErrServiceUnavailable)
		}
		return NewSearchResolver(tempoDB, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", shared.ErrInvalidArgument, strategy)
	}
}

// FeatureResolver looks tempos up in batches through the catalog's audio-feature endpoint.
//
// A failed batch fails the whole resolution.
type FeatureResolver struct {
	source    services.FeatureSource
	batchSize int
}

func NewFeatureResolver(source services.FeatureSource) *FeatureResolver {
	return &FeatureResolver{source: source, batchSize: services.MaxFeatureBatch}
}

func (r *FeatureResolver) Name() string     { return shared.StrategyFeatures }
func (r *FeatureResolver) RequiresID() bool { return true }

func (r *FeatureResolver) Resolve(ctx context.Context, tracks []models.Track, progress ProgressFunc) error {
	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}

	batches := chunk(ids, r.batchSize)
	tempos := make(map[string]string, len(ids))

	for i, batch := range batches {
		progress.send(batchUpdate(i+1, len(batches), len(batch)))

		features, err := r.source.AudioFeatures(ctx, batch...)
		if err != nil {
			return fmt.Errorf("audio features batch %d/%d: %w", i+1, len(batches), err)
		}

		for _, f := range features {
			if f == nil || f.ID == "" {
				continue
			}
			if bpm := models.FormatBPM(f.Tempo); bpm != models.UnknownBPM {
				tempos[f.ID] = bpm
			}
		}
	}

	for i := range tracks {
		if bpm, ok := tempos[tracks[i].ID]; ok {
			tracks[i].BPM = bpm
		} else {
			tracks[i].BPM = models.UnknownBPM
		}
	}

	return nil
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}

// SearchResolver looks each track up by title in an independent tempo database and matches on artist.
//
// Lookups run one at a time in playlist order. Any failure for a track leaves it [models.UnknownBPM].
type SearchResolver struct {
	db     services.TempoDatabase
	logger *log.Logger
}

func NewSearchResolver(db services.TempoDatabase, logger *log.Logger) *SearchResolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SearchResolver{db: db, logger: logger}
}

func (r *SearchResolver) Name() string     { return shared.StrategySearch }
func (r *SearchResolver) RequiresID() bool { return false }

func (r *SearchResolver) Resolve(ctx context.Context, tracks []models.Track, progress ProgressFunc) error {
	total := len(tracks)
	for i := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		tracks[i].BPM = r.lookup(ctx, tracks[i])
		progress.send(trackTempoUpdate(i+1, total, tracks[i]))
	}
	return nil
}

func (r *SearchResolver) lookup(ctx context.Context, track models.Track) string {
	candidates, err := r.db.SearchSongs(ctx, track.Name)
	if err != nil {
		r.logger.Debug("search failed", "track", track.Name, "error", err)
		return models.UnknownBPM
	}

	match, kind, ok := MatchCandidate(candidates, track.Name, track.ArtistFirst)
	if !ok {
		r.logger.Debug("no matching candidate", "track", track.Name, "artist", track.ArtistFirst, "candidates", len(candidates))
		return models.UnknownBPM
	}

	tempo, err := r.db.SongTempo(ctx, match.ID)
	if err != nil {
		r.logger.Debug("tempo lookup failed", "track", track.Name, "song", match.ID, "error", err)
		return models.UnknownBPM
	}

	r.logger.Debug("matched", "track", track.Name, "song", match.ID, "rule", kind, "tempo", tempo)
	return models.FormatBPM(tempo)
}
