// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/bpmx/internal/models"
)

// MockTempoDatabase is a test double for [services.TempoDatabase].
//
// Searches are answered from Results keyed by title, tempos from Tempos keyed by candidate ID.
// Titles listed in SearchErrors and IDs listed in TempoErrors fail. Every call is recorded in order.
type MockTempoDatabase struct {
	Results      map[string][]models.Candidate
	Tempos       map[string]float64
	SearchErrors map[string]error
	TempoErrors  map[string]error

	Searches []string
	Lookups  []string
}

func (m *MockTempoDatabase) SearchSongs(ctx context.Context, title string) ([]models.Candidate, error) {
	m.Searches = append(m.Searches, title)
	if err, ok := m.SearchErrors[title]; ok {
		return nil, err
	}
	return m.Results[title], nil
}

func (m *MockTempoDatabase) SongTempo(ctx context.Context, id string) (float64, error) {
	m.Lookups = append(m.Lookups, id)
	if err, ok := m.TempoErrors[id]; ok {
		return 0, err
	}
	tempo, ok := m.Tempos[id]
	if !ok {
		return 0, errors.New("song has no tempo")
	}
	return tempo, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// JSONResponse builds a response with the given status and body for use with [MockRoundTripper].
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
