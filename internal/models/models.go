// package models defines the data model for playlist tempo lookups
package models

import (
	"math"
	"strconv"
)

// UnknownBPM is the placeholder used when no tempo could be resolved for a track.
const UnknownBPM = "unknown"

// Track is a playlist entry with its resolved tempo.
type Track struct {
	ID          string // Catalog ID, empty when the catalog did not supply one
	Name        string // Track title
	Artist      string // All contributing artists joined with ", "
	ArtistFirst string // Primary artist, the anchor for fuzzy matching
	BPM         string // [UnknownBPM] or a non-negative integer rendered as text
}

// Tempo returns the numeric BPM and whether the track has one.
func (t Track) Tempo() (int, bool) {
	n, err := strconv.Atoi(t.BPM)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// HasBPM reports whether the track carries a resolved tempo.
func (t Track) HasBPM() bool {
	_, ok := t.Tempo()
	return ok
}

// Candidate is a single search hit from the tempo database.
type Candidate struct {
	ID     string
	Title  string
	Artist string
}

// FormatBPM rounds a tempo to the nearest integer (ties to even) and renders it as text.
//
// Non-positive, NaN and infinite values yield [UnknownBPM].
func FormatBPM(tempo float64) string {
	if math.IsNaN(tempo) || math.IsInf(tempo, 0) || tempo <= 0 {
		return UnknownBPM
	}
	return strconv.Itoa(int(math.RoundToEven(tempo)))
}
