package tasks

import (
	"strings"

	"github.com/desertthunder/bpmx/internal/models"
	"golang.org/x/text/cases"
)

// MatchKind records which rule accepted a search candidate.
type MatchKind int

const (
	NoMatch MatchKind = iota
	ExactArtist
	PartialArtist
	TitleOnly
)

func (k MatchKind) String() string {
	switch k {
	case ExactArtist:
		return "exact_artist"
	case PartialArtist:
		return "partial_artist"
	case TitleOnly:
		return "title_only"
	default:
		return "none"
	}
}

// MatchCandidate picks the search hit that best corresponds to a track.
//
// Rules are tried in order and the first hit wins:
//  1. a candidate whose artist equals the anchor artist, ignoring case;
//  2. a candidate whose artist contains the anchor or is contained by it, ignoring case;
//  3. the first candidate alone, if its title equals the queried title, ignoring case.
//
// An empty anchor never matches by artist.
func MatchCandidate(candidates []models.Candidate, title, anchor string) (models.Candidate, MatchKind, bool) {
	if len(candidates) == 0 {
		return models.Candidate{}, NoMatch, false
	}

	fold := cases.Fold()
	want := fold.String(anchor)

	if want != "" {
		for _, c := range candidates {
			if fold.String(c.Artist) == want {
				return c, ExactArtist, true
			}
		}

		for _, c := range candidates {
			got := fold.String(c.Artist)
			if got == "" {
				continue
			}
			if strings.Contains(got, want) || strings.Contains(want, got) {
				return c, PartialArtist, true
			}
		}
	}

	if first := candidates[0]; fold.String(first.Title) == fold.String(title) {
		return first, TitleOnly, true
	}

	return models.Candidate{}, NoMatch, false
}
