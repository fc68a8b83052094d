// GetSongBPM API implementation of [TempoDatabase]
//
// API reference: https://getsongbpm.com/api
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/bpmx/internal/models"
	"github.com/desertthunder/bpmx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultSongBPMBaseURL string = "https://api.getsong.co"

type songBPMArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type songBPMSong struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Artist songBPMArtist `json:"artist"`
	Tempo  *flexNumber   `json:"tempo"`
}

// flexNumber decodes a JSON number or a numeric string. The song endpoint uses both.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("tempo is null")
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("tempo %q is not a number", data)
	}
	*n = flexNumber(v)
	return nil
}

// SongBPMService implements [TempoDatabase] for the GetSongBPM API.
type SongBPMService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSongBPMService creates a GetSongBPM client.
//
// A RequestsPerSecond of zero leaves requests unpaced. A nil httpClient gets one with [shared.DefaultHTTPTimeout].
func NewSongBPMService(config shared.GetSongBPMConfig, httpClient *http.Client) (*SongBPMService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: missing getsongbpm api_key", shared.ErrMissingCredentials)
	}

	baseURL := strings.TrimSuffix(config.APIURL, "/")
	if baseURL == "" {
		baseURL = defaultSongBPMBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: shared.DefaultHTTPTimeout}
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	return &SongBPMService{
		apiKey:     config.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

func (s *SongBPMService) Name() string {
	return "GetSongBPM"
}

// doRequest issues a GET against endpoint with params plus the api key and decodes the JSON body into result.
func (s *SongBPMService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.apiKey)

	// Encode writes spaces as '+'; the search endpoint expects %20.
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	apiURL := s.baseURL + endpoint + "?" + query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: getsongbpm status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	return nil
}

// SearchSongs looks up songs by title, in the order the API ranks them.
//
// Calls GET /search/?type=song&lookup=<title>. An empty result comes back as {"search":{"error":"no result"}}.
func (s *SongBPMService) SearchSongs(ctx context.Context, title string) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("type", "song")
	params.Set("lookup", title)

	var body struct {
		Search json.RawMessage `json:"search"`
	}
	if err := s.doRequest(ctx, "/search/", params, &body); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(body.Search)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: search response has no search key", shared.ErrMalformedResponse)
	}

	if raw[0] == '{' {
		var status struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &status); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
		if status.Error != "" {
			return []models.Candidate{}, nil
		}
		return nil, fmt.Errorf("%w: unexpected search object", shared.ErrMalformedResponse)
	}

	var songs []songBPMSong
	if err := json.Unmarshal(raw, &songs); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	candidates := make([]models.Candidate, 0, len(songs))
	for _, song := range songs {
		candidates = append(candidates, models.Candidate{
			ID:     song.ID,
			Title:  song.Title,
			Artist: song.Artist.Name,
		})
	}

	return candidates, nil
}

// SongTempo fetches the tempo of a single song.
//
// Calls GET /song/?id=<id>.
func (s *SongBPMService) SongTempo(ctx context.Context, id string) (float64, error) {
	params := url.Values{}
	params.Set("id", id)

	var body struct {
		Song *songBPMSong `json:"song"`
	}
	if err := s.doRequest(ctx, "/song/", params, &body); err != nil {
		return 0, err
	}

	if body.Song == nil {
		return 0, fmt.Errorf("%w: song %s", shared.ErrTrackNotFound, id)
	}
	if body.Song.Tempo == nil {
		return 0, fmt.Errorf("%w: song %s has no tempo", shared.ErrTrackNotFound, id)
	}

	return float64(*body.Song.Tempo), nil
}
