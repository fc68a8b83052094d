// package services defines the interfaces bpmx needs from external music APIs
//
// Spotify (playlist catalog, audio features), GetSongBPM (tempo database)
package services

import (
	"context"

	"github.com/desertthunder/bpmx/internal/models"
)

// MaxFeatureBatch is the most track IDs a single audio-feature lookup may carry.
const MaxFeatureBatch = 100

// Catalog pages through the tracks of a playlist.
type Catalog interface {
	// PlaylistTracks fetches the first page of a playlist's track listing.
	PlaylistTracks(ctx context.Context, playlistID string) (*TrackPage, error)

	// NextTracks follows page.Next. Callers stop when Next is empty.
	NextTracks(ctx context.Context, page *TrackPage) (*TrackPage, error)
}

// FeatureSource looks up tempos by catalog track ID.
type FeatureSource interface {
	// AudioFeatures returns one entry per requested ID, in request order.
	// Entries are nil for tracks the service has no features for.
	AudioFeatures(ctx context.Context, ids ...string) ([]*AudioFeature, error)
}

// TempoDatabase is an independent song database searched by title.
type TempoDatabase interface {
	// SearchSongs returns candidates for a title, best match first.
	SearchSongs(ctx context.Context, title string) ([]models.Candidate, error)

	// SongTempo fetches the tempo of a single candidate.
	SongTempo(ctx context.Context, id string) (float64, error)
}

// TrackPage is one page of a playlist's track listing.
type TrackPage struct {
	Items []PlaylistEntry
	Total int
	Next  string // URL of the following page, empty on the last page
}

// PlaylistEntry is a single playlist slot. Track is nil when the slot holds a deleted, unavailable, or non-track item.
type PlaylistEntry struct {
	Track *CatalogTrack
}

// CatalogTrack is a track as described by the catalog.
type CatalogTrack struct {
	ID      string
	Name    string
	Artists []string
}

// AudioFeature carries the tempo of one track.
type AudioFeature struct {
	ID    string
	Tempo float64
}
