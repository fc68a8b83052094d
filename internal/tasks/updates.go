package tasks

import (
	"fmt"

	"github.com/desertthunder/bpmx/internal/models"
)

// ProgressUpdate represents a progress event during a run.
//
// Used to send real-time updates to the CLI layer for display on stderr.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data ([models.Track] for ResolveTempo)
}

// ProgressFunc receives updates synchronously and in order. A nil ProgressFunc discards them.
type ProgressFunc func(ProgressUpdate)

// Operation phase enumeration
type Phase int

const (
	FetchPlaylist Phase = iota
	FoundTracks
	ResolveTempo
	SortTracks
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylist:
		return "fetch_playlist"
	case FoundTracks:
		return "found_tracks"
	case ResolveTempo:
		return "resolve_tempo"
	case SortTracks:
		return "sort_tracks"
	default:
		return ""
	}
}

func (f ProgressFunc) send(update ProgressUpdate) {
	if f != nil {
		f(update)
	}
}

func fetchPlaylistUpdate(page int, playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    page,
		Message: fmt.Sprintf("Fetching playlist %s (page %d)...", playlistID, page),
	}
}

func foundTracksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FoundTracks,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Found %d tracks", count),
	}
}

func batchUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveTempo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching audio features (batch %d/%d, %d tracks)", step, total, size),
	}
}

func trackTempoUpdate(step, total int, track models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveTempo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, track.Name, track.BPM),
		Data:    track,
	}
}

func sortUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SortTracks,
		Step:    total,
		Total:   total,
		Message: "Sorting by BPM...",
	}
}
