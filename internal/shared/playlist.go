package shared

import "strings"

const (
	playlistLinkSegment = "open.spotify.com/playlist/"
	playlistURIPrefix   = "spotify:playlist:"
)

// ExtractPlaylistID normalizes a playlist reference into a bare catalog ID.
//
// Accepts a web link (query string and trailing path segments are dropped), a spotify:playlist: URI, or a bare ID.
// The result is not validated; a bad ID is only discovered when the catalog lookup fails.
func ExtractPlaylistID(ref string) string {
	ref = strings.TrimSpace(ref)

	if _, path, ok := strings.Cut(ref, playlistLinkSegment); ok {
		path, _, _ = strings.Cut(path, "?")
		path, _, _ = strings.Cut(path, "/")
		return path
	}

	if id, ok := strings.CutPrefix(ref, playlistURIPrefix); ok {
		return id
	}

	return ref
}
