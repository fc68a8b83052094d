package tasks

import (
	"cmp"
	"slices"

	"github.com/desertthunder/bpmx/internal/models"
)

// SortByBPM orders tracks by ascending tempo in place. Tracks without a tempo go last.
// The sort is stable, so equal tempos and unknowns keep their playlist order.
func SortByBPM(tracks []models.Track) {
	slices.SortStableFunc(tracks, func(a, b models.Track) int {
		at, aok := a.Tempo()
		bt, bok := b.Tempo()

		switch {
		case aok && bok:
			return cmp.Compare(at, bt)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}
