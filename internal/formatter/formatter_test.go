package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/mattn/go-runewidth"
)

func sampleTracks() []models.Track {
	return []models.Track{
		{Name: "Slow Song", Artist: "Quiet Band", BPM: "70"},
		{Name: "Comma, Inc.", Artist: "Artist \"Q\", Other", BPM: "128"},
		{Name: "Lost", Artist: "Nobody", BPM: models.UnknownBPM},
	}
}

func TestFormats(t *testing.T) {
	t.Run("ParseFormat", func(t *testing.T) {
		for _, name := range []string{"table", "csv", "json"} {
			f, err := ParseFormat(name)
			if err != nil || string(f) != name {
				t.Errorf("ParseFormat(%q) = %q, %v", name, f, err)
			}
		}

		for _, name := range []string{"", "xml", "CSV"} {
			if _, err := ParseFormat(name); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("ParseFormat(%q): expected ErrInvalidFlag, got %v", name, err)
			}
		}
	})

	t.Run("FormatNames", func(t *testing.T) {
		if got := FormatNames(); got != "table, csv, json" {
			t.Errorf("unexpected names %q", got)
		}
	})

	t.Run("Render dispatches", func(t *testing.T) {
		tracks := sampleTracks()
		for _, f := range Formats {
			out, err := Render(f, tracks)
			if err != nil {
				t.Fatalf("Render(%s) error = %v", f, err)
			}
			if len(out) == 0 || bytes.HasSuffix(out, []byte("\n")) {
				t.Errorf("Render(%s): expected non-empty output without trailing newline, got %q", f, out)
			}
		}

		if _, err := Render("yaml", tracks); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestTable(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		tracks := []models.Track{
			{Name: "Alpha", Artist: "Band", BPM: "120"},
			{Name: "B", Artist: "Someone Else", BPM: models.UnknownBPM},
		}

		want := strings.Join([]string{
			"Track  Artist          BPM",
			"--------------------------",
			"Alpha  Band            120",
			"B      Someone Else  unknown",
		}, "\n")

		if got := Table(tracks); got != want {
			t.Errorf("unexpected table:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("column widths are clamped", func(t *testing.T) {
		tc := []struct {
			name       string
			track      models.Track
			wantName   int
			wantArtist int
		}{
			{name: "floors", track: models.Track{Name: "A", Artist: "B"}, wantName: 5, wantArtist: 6},
			{name: "natural", track: models.Track{Name: strings.Repeat("n", 20), Artist: strings.Repeat("a", 30)}, wantName: 20, wantArtist: 30},
			{name: "ceilings", track: models.Track{Name: strings.Repeat("n", 80), Artist: strings.Repeat("a", 80)}, wantName: 50, wantArtist: 40},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				name, artist := ColumnWidths([]models.Track{tt.track})
				if name != tt.wantName || artist != tt.wantArtist {
					t.Fatalf("ColumnWidths() = %d, %d; want %d, %d", name, artist, tt.wantName, tt.wantArtist)
				}

				lines := strings.Split(Table([]models.Track{tt.track}), "\n")
				wantWidth := tt.wantName + 2 + tt.wantArtist + 2 + 5
				for i, line := range lines {
					if got := runewidth.StringWidth(line); got != wantWidth {
						t.Errorf("line %d: width %d, want %d: %q", i, got, wantWidth, line)
					}
				}
			})
		}
	})

	t.Run("long values are cut without marker", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		out := Table([]models.Track{{Name: long, Artist: "A", BPM: "99"}})
		row := strings.Split(out, "\n")[2]
		if !strings.HasPrefix(row, strings.Repeat("x", 50)+"  ") {
			t.Errorf("expected name truncated to 50 cells, got %q", row)
		}
		if strings.Contains(row, "...") || strings.Contains(row, "…") {
			t.Errorf("expected no truncation marker, got %q", row)
		}
	})

	t.Run("wide runes count as two cells", func(t *testing.T) {
		name, _ := ColumnWidths([]models.Track{{Name: "東京タワー", Artist: "X"}})
		if name != 10 {
			t.Errorf("expected width 10, got %d", name)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Table(nil); got != NoTracks {
			t.Errorf("expected %q, got %q", NoTracks, got)
		}
	})
}

func TestCSV(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tracks := sampleTracks()
		out, err := CSV(tracks)
		if err != nil {
			t.Fatalf("CSV() error = %v", err)
		}
		if bytes.HasSuffix(out, []byte("\n")) {
			t.Errorf("expected trailing newline to be trimmed")
		}

		records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}
		if len(records) != len(tracks)+1 {
			t.Fatalf("expected %d records, got %d", len(tracks)+1, len(records))
		}
		if strings.Join(records[0], ",") != "track,artist,bpm" {
			t.Errorf("unexpected header %v", records[0])
		}
		for i, tr := range tracks {
			rec := records[i+1]
			if rec[0] != tr.Name || rec[1] != tr.Artist || rec[2] != tr.BPM {
				t.Errorf("record %d: got %v, want %v", i, rec, tr)
			}
		}
	})

	t.Run("empty input is header only", func(t *testing.T) {
		out, err := CSV(nil)
		if err != nil {
			t.Fatalf("CSV() error = %v", err)
		}
		if string(out) != "track,artist,bpm" {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tracks := sampleTracks()
		out, err := JSON(tracks)
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}

		var rows []Row
		if err := json.Unmarshal(out, &rows); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if len(rows) != len(tracks) {
			t.Fatalf("expected %d rows, got %d", len(tracks), len(rows))
		}
		for i, tr := range tracks {
			if rows[i].Track != tr.Name || rows[i].Artist != tr.Artist || rows[i].BPM != tr.BPM {
				t.Errorf("row %d: got %+v, want %+v", i, rows[i], tr)
			}
		}
	})

	t.Run("indents and keeps bpm a string", func(t *testing.T) {
		out, err := JSON([]models.Track{{Name: "A & B", Artist: "C", BPM: "90"}})
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		want := "[\n  {\n    \"track\": \"A & B\",\n    \"artist\": \"C\",\n    \"bpm\": \"90\"\n  }\n]"
		if string(out) != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := JSON(nil)
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		if string(out) != "[]" {
			t.Errorf("expected [], got %q", out)
		}
	})
}
