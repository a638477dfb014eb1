package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	defaultWindowSize    = 10
	defaultPlayThreshold = 10 * time.Second
	defaultSyncTimeout   = 15 * time.Second
)

type Config struct {
	// Library backend (enables remote sync and library listing when configured)
	Server ServerConfig `koanf:"server"`

	Playback PlaybackConfig `koanf:"playback"`

	State StateConfig `koanf:"state"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Log LogConfig `koanf:"log"`
}

// ServerConfig holds the library backend endpoints.
type ServerConfig struct {
	APIURL   string `koanf:"api_url"`   // e.g., "https://music.example.com/api"
	MediaURL string `koanf:"media_url"` // base for relative track, artwork and waveform paths
	Token    string `koanf:"token"`     // bearer token, optional
}

// PlaybackConfig holds playback store tuning.
type PlaybackConfig struct {
	WindowLen            int `koanf:"window_size"`            // Up Next / Back To length (default: 10)
	PlayThresholdSeconds int `koanf:"play_threshold_seconds"` // position that counts as a play (default: 10)
	SyncTimeoutSeconds   int `koanf:"sync_timeout_seconds"`   // per remote call (default: 15)
}

// StateConfig holds local persistence settings.
type StateConfig struct {
	Path string `koanf:"path"` // empty means the XDG data dir
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
}

// Load reads the default config files, then extra (if any). Later files win;
// missing files are skipped.
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom reads the given config files in order.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize URLs (remove trailing slash)
	cfg.Server.APIURL = strings.TrimSuffix(cfg.Server.APIURL, "/")
	cfg.Server.MediaURL = strings.TrimSuffix(cfg.Server.MediaURL, "/")

	if cfg.State.Path != "" {
		cfg.State.Path = expandPath(cfg.State.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wavesmobile/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wavesmobile", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasServerConfig returns true if the library backend is configured.
func (c *Config) HasServerConfig() bool {
	return c.Server.APIURL != ""
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// WindowSize returns the queue window length with the default applied.
func (p PlaybackConfig) WindowSize() int {
	if p.WindowLen <= 0 {
		return defaultWindowSize
	}
	return p.WindowLen
}

// PlayThreshold returns the play registration threshold with the default applied.
func (p PlaybackConfig) PlayThreshold() time.Duration {
	if p.PlayThresholdSeconds <= 0 {
		return defaultPlayThreshold
	}
	return time.Duration(p.PlayThresholdSeconds) * time.Second
}

// SyncTimeout returns the remote call timeout with the default applied.
func (p PlaybackConfig) SyncTimeout() time.Duration {
	if p.SyncTimeoutSeconds <= 0 {
		return defaultSyncTimeout
	}
	return time.Duration(p.SyncTimeoutSeconds) * time.Second
}

// LogLevel parses the configured level; unknown or empty values mean info.
func (l LogConfig) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
