// package formatter renders resolved tracks as an aligned table, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/mattn/go-runewidth"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// Formats lists the accepted output formats in help order.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON}

// NoTracks is the whole table output for an empty playlist.
const NoTracks = "No tracks found."

// Column bounds for the table renderer, in terminal cells.
const (
	nameMinWidth   = 5
	nameMaxWidth   = 50
	artistMinWidth = 6
	artistMaxWidth = 40
	bpmWidth       = 5
	columnGap      = "  "
)

// ParseFormat validates a format name. Matching is exact.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, s, FormatNames())
}

// FormatNames joins the accepted format names for help and error text.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Render dispatches to the renderer for format. The result has no trailing newline.
func Render(format Format, tracks []models.Track) ([]byte, error) {
	switch format {
	case FormatTable:
		return []byte(Table(tracks)), nil
	case FormatCSV:
		return CSV(tracks)
	case FormatJSON:
		return JSON(tracks)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// Table renders tracks as aligned columns: Track, Artist, and a right-aligned BPM.
//
// The Track and Artist columns are as wide as their longest value, clamped to 5..50 and 6..40 cells.
// Longer values are cut to the column width with no marker. Widths count terminal cells, so wide runes take two.
func Table(tracks []models.Track) string {
	if len(tracks) == 0 {
		return NoTracks
	}

	nameWidth, artistWidth := ColumnWidths(tracks)

	row := func(name, artist, bpm string) string {
		return runewidth.FillRight(runewidth.Truncate(name, nameWidth, ""), nameWidth) + columnGap +
			runewidth.FillRight(runewidth.Truncate(artist, artistWidth, ""), artistWidth) + columnGap +
			runewidth.FillLeft(bpm, bpmWidth)
	}

	header := row("Track", "Artist", "BPM")

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", runewidth.StringWidth(header)))
	for _, t := range tracks {
		b.WriteByte('\n')
		b.WriteString(row(t.Name, t.Artist, t.BPM))
	}

	return b.String()
}

// ColumnWidths returns the clamped Track and Artist column widths [Table] uses.
func ColumnWidths(tracks []models.Track) (name, artist int) {
	for _, t := range tracks {
		name = max(name, runewidth.StringWidth(t.Name))
		artist = max(artist, runewidth.StringWidth(t.Artist))
	}
	return clamp(name, nameMinWidth, nameMaxWidth), clamp(artist, artistMinWidth, artistMaxWidth)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// CSV renders a track,artist,bpm header followed by one record per track.
func CSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"track", "artist", "bpm"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tracks {
		if err := writer.Write([]string{t.Name, t.Artist, t.BPM}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\r\n"), nil
}

// Row is the JSON shape of one track. BPM stays a string so "unknown" survives.
type Row struct {
	Track  string `json:"track"`
	Artist string `json:"artist"`
	BPM    string `json:"bpm"`
}

// JSON renders tracks as an array of [Row] indented with two spaces. No tracks gives [].
func JSON(tracks []models.Track) ([]byte, error) {
	rows := make([]Row, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, Row{Track: t.Name, Artist: t.Artist, BPM: t.BPM})
	}
	return shared.MarshalJSON(rows, true)
}
