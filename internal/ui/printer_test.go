package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/tasks"
)

func TestPrinter(t *testing.T) {
	t.Run("one plain line per update off a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, false)

		p.Progress(tasks.ProgressUpdate{Phase: tasks.FetchPlaylist, Message: "Fetching playlist"})
		p.Progress(tasks.ProgressUpdate{Phase: tasks.FoundTracks, Message: "Found 2 tracks"})
		p.Progress(tasks.ProgressUpdate{
			Phase:   tasks.ResolveTempo,
			Message: "[1/2] Song: unknown",
			Data:    models.Track{Name: "Song", BPM: models.UnknownBPM},
		})
		p.Progress(tasks.ProgressUpdate{Phase: tasks.SortTracks})

		want := "Fetching playlist\nFound 2 tracks\n[1/2] Song: unknown\n"
		if got := buf.String(); got != want {
			t.Errorf("unexpected output %q, want %q", got, want)
		}
		if strings.Contains(buf.String(), "\x1b[") {
			t.Errorf("expected no escape sequences, got %q", buf.String())
		}
	})

	t.Run("quiet drops progress and summary", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, true)

		p.Progress(tasks.ProgressUpdate{Phase: tasks.FoundTracks, Message: "Found 2 tracks"})
		p.Summary(1, 2)

		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("Summary", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, false).Summary(3, 4)

		if got := buf.String(); got != "Resolved 3 of 4 tracks\n" {
			t.Errorf("unexpected summary %q", got)
		}
	})

	t.Run("ShouldColorize", func(t *testing.T) {
		if ShouldColorize(&bytes.Buffer{}) {
			t.Error("a buffer is not a terminal")
		}
	})
}
