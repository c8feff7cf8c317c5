// Package config loads the VibeSwipe service configuration from the
// environment, with optional overrides from a YAML file.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration for the VibeSwipe server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	DB      DBConfig      `yaml:"db"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Gemini  GeminiConfig  `yaml:"gemini"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string `yaml:"host" env:"HOST" env-default:"127.0.0.1"`
	Port        string `yaml:"port" env:"PORT" env-default:"8080"`
	CORSOrigins string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Origins returns the parsed CORS origin list.
func (s ServerConfig) Origins() []string {
	parts := strings.Split(s.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// AuthConfig holds token issuance parameters for the API's own sessions.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"60m"`
	Issuer         string        `yaml:"issuer" env:"ISSUER" env-default:"vibeswipe"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" env-required:"true"`
}

// SpotifyConfig holds the Spotify application credentials and the
// redirect addresses the delegated-authorization flow may return to.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" env:"SPOTIFY_ID" env-required:"true"`
	ClientSecret string `yaml:"client_secret" env:"SPOTIFY_SECRET" env-required:"true"`
	RedirectURIs string `yaml:"redirect_uris" env:"SPOTIFY_REDIRECT_URIS" env-default:"http://127.0.0.1:5173/callback"`
}

// AllowedRedirects returns the parsed redirect URI allowlist.
func (s SpotifyConfig) AllowedRedirects() []string {
	parts := strings.Split(s.RedirectURIs, ",")
	uris := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			uris = append(uris, trimmed)
		}
	}
	return uris
}

// GeminiConfig holds the text-generation service credentials.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY" env-required:"true"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-3-flash-preview"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration. Priority: explicit path, then CONFIG_PATH,
// then environment variables only. Environment values override file values.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
		// Re-apply environment on top of file values.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}
