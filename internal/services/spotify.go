// Spotify API implementation of [Catalog] and [FeatureSource]
//
// Spotify API reference: https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/bpmx/internal/shared"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1/"

	// playlistPageSize is the largest page the playlist items endpoint serves.
	playlistPageSize = 100
)

// ErrNoMorePages is returned by [Catalog.NextTracks] when the page has no successor.
var ErrNoMorePages = errors.New("no more pages")

// SpotifyService implements [Catalog] and [FeatureSource] for the Spotify Web API.
// Uses the client-credentials flow, so only public and collaborative playlists are reachable.
type SpotifyService struct {
	api *spotify.Client
}

// NewSpotifyService creates a Spotify service authenticated with the app's client credentials.
//
// httpClient is used both for the token exchange and as the base transport for API calls; its Timeout bounds each request.
func NewSpotifyService(ctx context.Context, config shared.SpotifyConfig, httpClient *http.Client) (*SpotifyService, error) {
	if config.ClientID == "" {
		return nil, fmt.Errorf("%w: missing spotify client_id", shared.ErrMissingCredentials)
	}
	if config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing spotify client_secret", shared.ErrMissingCredentials)
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	baseURL := config.APIURL
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cc := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     tokenURL,
	}

	authed := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, httpClient))
	authed.Timeout = httpClient.Timeout

	return NewSpotifyServiceWithClient(spotify.New(authed, spotify.WithBaseURL(baseURL))), nil
}

// NewSpotifyServiceWithClient wraps an already configured [spotify.Client].
func NewSpotifyServiceWithClient(api *spotify.Client) *SpotifyService {
	return &SpotifyService{api: api}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// PlaylistTracks fetches the first page of playlist items.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) (*TrackPage, error) {
	page, err := s.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(playlistPageSize))
	if err != nil {
		return nil, mapSpotifyError(err, fmt.Sprintf("playlist %s", playlistID))
	}
	return convertItemPage(page), nil
}

// NextTracks follows the next link of a page returned by this service.
func (s *SpotifyService) NextTracks(ctx context.Context, page *TrackPage) (*TrackPage, error) {
	if page == nil || page.Next == "" {
		return nil, ErrNoMorePages
	}

	next := &spotify.PlaylistItemPage{}
	next.Next = page.Next

	if err := s.api.NextPage(ctx, next); err != nil {
		if errors.Is(err, spotify.ErrNoMorePages) {
			return nil, ErrNoMorePages
		}
		return nil, mapSpotifyError(err, "next playlist page")
	}

	return convertItemPage(next), nil
}

// AudioFeatures looks up tempos for up to [MaxFeatureBatch] track IDs in one request.
func (s *SpotifyService) AudioFeatures(ctx context.Context, ids ...string) ([]*AudioFeature, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxFeatureBatch {
		return nil, fmt.Errorf("%w: maximum %d track IDs allowed, got %d", shared.ErrInvalidArgument, MaxFeatureBatch, len(ids))
	}

	spotifyIDs := make([]spotify.ID, len(ids))
	for i, id := range ids {
		spotifyIDs[i] = spotify.ID(id)
	}

	features, err := s.api.GetAudioFeatures(ctx, spotifyIDs...)
	if err != nil {
		return nil, mapSpotifyError(err, "audio features")
	}

	result := make([]*AudioFeature, len(features))
	for i, f := range features {
		if f == nil {
			continue
		}
		result[i] = &AudioFeature{ID: f.ID.String(), Tempo: float64(f.Tempo)}
	}

	return result, nil
}

func convertItemPage(page *spotify.PlaylistItemPage) *TrackPage {
	result := &TrackPage{
		Items: make([]PlaylistEntry, 0, len(page.Items)),
		Total: int(page.Total),
		Next:  page.Next,
	}

	for _, item := range page.Items {
		var entry PlaylistEntry
		if ft := item.Track.Track; ft != nil {
			artists := make([]string, 0, len(ft.Artists))
			for _, a := range ft.Artists {
				artists = append(artists, a.Name)
			}
			entry.Track = &CatalogTrack{
				ID:      ft.ID.String(),
				Name:    ft.Name,
				Artists: artists,
			}
		}
		result.Items = append(result.Items, entry)
	}

	return result
}

// mapSpotifyError translates client errors into the shared error taxonomy.
func mapSpotifyError(err error, what string) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return statusError(apiErr.Status, what, apiErr.Message)
	}

	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) {
		return fmt.Errorf("%w: token request rejected: %v", shared.ErrNotAuthenticated, tokenErr)
	}

	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, what, err)
}

func statusError(status int, what, message string) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s: %s", shared.ErrPlaylistNotFound, what, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", shared.ErrNotAuthenticated, what, message)
	default:
		return fmt.Errorf("%w: %s: spotify status %d: %s", shared.ErrAPIRequest, what, status, message)
	}
}
