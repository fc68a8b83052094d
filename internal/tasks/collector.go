package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/services"
	"github.com/desertthunder/bpmx/internal/shared"
)

// CollectTracks reads every page of a playlist, in order, one request at a time.
//
// Entries without a track are skipped, as are tracks missing the field the resolver keys on:
// the catalog ID when requireID is set, the name otherwise.
func CollectTracks(ctx context.Context, catalog services.Catalog, playlistID string, requireID bool, progress ProgressFunc) ([]models.Track, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	pageNum := 1
	progress.send(fetchPlaylistUpdate(pageNum, playlistID))

	page, err := catalog.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, max(page.Total, len(page.Items)))
	for {
		for _, entry := range page.Items {
			if track, ok := convertEntry(entry, requireID); ok {
				tracks = append(tracks, track)
			}
		}

		if page.Next == "" {
			break
		}

		pageNum++
		progress.send(fetchPlaylistUpdate(pageNum, playlistID))

		page, err = catalog.NextTracks(ctx, page)
		if errors.Is(err, services.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return tracks, nil
}

func convertEntry(entry services.PlaylistEntry, requireID bool) (models.Track, bool) {
	t := entry.Track
	if t == nil {
		return models.Track{}, false
	}
	if requireID && t.ID == "" {
		return models.Track{}, false
	}
	if !requireID && t.Name == "" {
		return models.Track{}, false
	}

	track := models.Track{
		ID:     t.ID,
		Name:   t.Name,
		Artist: strings.Join(t.Artists, ", "),
		BPM:    models.UnknownBPM,
	}
	if len(t.Artists) > 0 {
		track.ArtistFirst = t.Artists[0]
	}
	return track, true
}
