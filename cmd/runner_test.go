package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bpmx/internal/shared"
	tu "github.com/desertthunder/bpmx/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			errOutput := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &fakeCatalog{}
			features := &fakeFeatures{}
			tempoDB := &tu.MockTempoDatabase{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				EnvPath:    "test.env",
				Logger:     logger,
				Output:     output,
				ErrOutput:  errOutput,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Features:   features,
				TempoDB:    tempoDB,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.envPath != "test.env" {
				t.Errorf("expected envPath to be set, got %s", runner.envPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output || runner.errOutput != errOutput {
				t.Error("expected outputs to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog || runner.features != features || runner.tempoDB != tempoDB {
				t.Error("expected services to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.errOutput != os.Stderr {
				t.Error("expected errOutput to default to os.Stderr")
			}
			if runner.envPath != defaultEnvPath {
				t.Errorf("expected envPath %s, got %s", defaultEnvPath, runner.envPath)
			}
			if runner.config != nil {
				t.Error("expected config to be resolved lazily")
			}
		})
	})

	t.Run("client", func(t *testing.T) {
		t.Run("uses configured timeout", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.HTTP.Timeout = 3 * time.Second

			client := NewRunner(RunnerOpts{}).client(config)
			if client.Timeout != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", client.Timeout)
			}
		})

		t.Run("prefers injected client", func(t *testing.T) {
			injected := &http.Client{}
			if got := NewRunner(RunnerOpts{HTTPClient: injected}).client(shared.DefaultConfig()); got != injected {
				t.Error("expected injected client")
			}
		})
	})

	t.Run("needsCredentials", func(t *testing.T) {
		tc := []struct {
			name     string
			opts     RunnerOpts
			strategy string
			want     bool
		}{
			{name: "nothing injected", strategy: shared.StrategyFeatures, want: true},
			{name: "features injected", opts: RunnerOpts{Catalog: &fakeCatalog{}, Features: &fakeFeatures{}}, strategy: shared.StrategyFeatures},
			{name: "search without tempo db", opts: RunnerOpts{Catalog: &fakeCatalog{}, Features: &fakeFeatures{}}, strategy: shared.StrategySearch, want: true},
			{name: "search injected", opts: RunnerOpts{Catalog: &fakeCatalog{}, TempoDB: &tu.MockTempoDatabase{}}, strategy: shared.StrategySearch},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := NewRunner(tt.opts).needsCredentials(tt.strategy); got != tt.want {
					t.Errorf("needsCredentials(%s) = %v, want %v", tt.strategy, got, tt.want)
				}
			})
		}
	})

	t.Run("buildServices", func(t *testing.T) {
		t.Run("features builds spotify only", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = "id"
			config.Credentials.Spotify.ClientSecret = "secret"

			runner := NewRunner(RunnerOpts{Config: config})
			if err := runner.buildServices(context.Background(), config, shared.StrategyFeatures); err != nil {
				t.Fatalf("buildServices() error = %v", err)
			}
			if runner.catalog == nil || runner.features == nil {
				t.Error("expected catalog and feature source")
			}
			if runner.tempoDB != nil {
				t.Error("expected no tempo database for features strategy")
			}
		})

		t.Run("search requires api key", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Catalog: &fakeCatalog{}})
			err := runner.buildServices(context.Background(), shared.DefaultConfig(), shared.StrategySearch)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("writeResult", func(t *testing.T) {
		t.Run("appends newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeResult([]byte("[]")); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "[]\n" {
				t.Errorf("expected %q, got %q", "[]\n", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeResult([]byte("[]"))
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(1, &bytes.Buffer{})})

			err := runner.writeResult([]byte("[]"))
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("%s=%d\n", "bpm", 120); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "bpm=120\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("setLogLevel", func(t *testing.T) {
		for _, tt := range []struct {
			args []string
			want log.Level
		}{
			{args: []string{"bpmx", "--verbose", "PL"}, want: log.DebugLevel},
			{args: []string{"bpmx", "--quiet", "PL"}, want: log.ErrorLevel},
			{args: []string{"bpmx", "--quiet", "--verbose", "PL"}, want: log.ErrorLevel},
		} {
			t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
				logger := shared.NewLogger(&bytes.Buffer{})
				runner := NewRunner(RunnerOpts{
					Config:    shared.DefaultConfig(),
					Logger:    logger,
					Output:    &bytes.Buffer{},
					ErrOutput: &bytes.Buffer{},
					Catalog:   &fakeCatalog{},
					Features:  &fakeFeatures{},
				})

				if err := runApp(runner, tt.args...); err != nil {
					t.Fatalf("run error = %v", err)
				}
				if got := logger.GetLevel(); got != tt.want {
					t.Errorf("expected level %v, got %v", tt.want, got)
				}
			})
		}
	})
}
