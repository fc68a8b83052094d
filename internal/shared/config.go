package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Tempo resolution strategies.
const (
	StrategyFeatures = "features" // batched lookup against the catalog's audio-feature endpoint
	StrategySearch   = "search"   // title search plus artist matching against the tempo database
)

// DefaultHTTPTimeout bounds every outbound request when no timeout is configured.
const DefaultHTTPTimeout = 10 * time.Second

const redacted = "********"

// Config represents the application configuration.
//
// Values come from the embedded defaults, an optional TOML file, an optional .env file, then the process environment.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Resolver    ResolverConfig    `toml:"resolver"`
	HTTP        HTTPConfig        `toml:"http"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify    SpotifyConfig    `toml:"spotify"`
	GetSongBPM GetSongBPMConfig `toml:"getsongbpm"`
}

// SpotifyConfig contains Spotify API credentials and endpoints.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"SPOTIFY_CLIENT_ID" env-description:"Spotify application client ID"`
	ClientSecret string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET" env-description:"Spotify application client secret"`
	APIURL       string `toml:"api_url" env:"SPOTIFY_API_URL" env-description:"Spotify Web API base URL"`
	TokenURL     string `toml:"token_url" env:"SPOTIFY_TOKEN_URL" env-description:"Spotify OAuth2 token endpoint"`
}

// GetSongBPMConfig contains tempo database credentials and request pacing.
type GetSongBPMConfig struct {
	APIKey            string  `toml:"api_key" env:"GETSONGBPM_API_KEY" env-description:"GetSongBPM API key (search strategy only)"`
	APIURL            string  `toml:"api_url" env:"GETSONGBPM_API_URL" env-description:"GetSongBPM API base URL"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"GETSONGBPM_RPS" env-description:"Maximum GetSongBPM requests per second, 0 for unlimited"`
}

// ResolverConfig selects how tempos are resolved.
type ResolverConfig struct {
	Strategy string `toml:"strategy" env:"BPMX_STRATEGY" env-description:"Tempo strategy: features or search"`
}

// HTTPConfig contains outbound HTTP client settings.
type HTTPConfig struct {
	Timeout time.Duration `toml:"timeout" env:"BPMX_HTTP_TIMEOUT" env-description:"Per-request timeout, e.g. 10s"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig builds the effective configuration.
//
// configPath and envPath are both optional; a missing file at either path is skipped.
// Variables already present in the environment win over the .env file, and the environment wins over the TOML file.
func ResolveConfig(configPath, envPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			loaded, err := LoadConfig(configPath)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, envPath, err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("%w: failed to read environment: %v", ErrInvalidConfig, err)
	}

	config.normalize()
	return config, nil
}

func (c *Config) normalize() {
	c.Resolver.Strategy = strings.ToLower(strings.TrimSpace(c.Resolver.Strategy))
	if c.Resolver.Strategy == "" {
		c.Resolver.Strategy = StrategyFeatures
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	if c.Credentials.GetSongBPM.RequestsPerSecond < 0 {
		c.Credentials.GetSongBPM.RequestsPerSecond = 0
	}
}

// Validate checks that the credentials required by strategy are present.
func (c *Config) Validate(strategy string) error {
	var missing []string

	spotify := c.Credentials.Spotify
	if spotify.ClientID == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if spotify.ClientSecret == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}

	switch strategy {
	case StrategyFeatures:
	case StrategySearch:
		if c.Credentials.GetSongBPM.APIKey == "" {
			missing = append(missing, "GETSONGBPM_API_KEY")
		}
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, strategy)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must be set", ErrMissingCredentials, strings.Join(missing, " and "))
	}

	return nil
}

// Redacted returns a copy of the config with secrets masked, suitable for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redacted
	}
	c.Credentials.Spotify.ClientSecret = mask(c.Credentials.Spotify.ClientSecret)
	c.Credentials.GetSongBPM.APIKey = mask(c.Credentials.GetSongBPM.APIKey)
	return c
}

// WriteConfig encodes config as TOML to w.
func WriteConfig(w io.Writer, config *Config) error {
	if err := toml.NewEncoder(w).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// EnvUsage describes every environment variable the configuration reads.
func EnvUsage() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&Config{}, &header)
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
