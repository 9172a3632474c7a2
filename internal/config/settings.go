package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/cue-splitter/internal/audio"
)

// Settings holds all configuration options.
type Settings struct {
	// External tools
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	Editor        string `toml:"editor"` // empty: $EDITOR, then nano
	Viewer        string `toml:"viewer"` // empty: xdg-open or open

	// Splitting
	MaxConcurrentSplits int  `toml:"max_concurrent_splits"`
	LossyDecode         bool `toml:"lossy_decode"`

	// Tags and cover art
	ModifyTags      bool `toml:"modify_tags"`
	EmbedCoverArt   bool `toml:"embed_cover_art"`
	CoverArtMaxSize int  `toml:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format"` // m3u, pls
	M3UExtended    bool   `toml:"m3u_extended"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		FFmpegBinary:  "ffmpeg",
		FFprobeBinary: "ffprobe",

		MaxConcurrentSplits: runtime.NumCPU(),
		LossyDecode:         true,

		ModifyTags:      true,
		EmbedCoverArt:   true,
		CoverArtMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/cuesplit/config.toml, using
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cuesplit", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cuesplit", "config.toml"), nil
}

// Load reads settings from a TOML file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating its directory.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no component can act on.
func (s *Settings) Validate() error {
	var errs []error
	if s.MaxConcurrentSplits < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent_splits must be at least 1, got %d", s.MaxConcurrentSplits))
	}
	if s.CoverArtMaxSize < 0 {
		errs = append(errs, fmt.Errorf("cover_art_max_size must not be negative, got %d", s.CoverArtMaxSize))
	}
	switch strings.ToLower(s.PlaylistFormat) {
	case "m3u", "pls":
	default:
		errs = append(errs, fmt.Errorf("playlist_format must be m3u or pls, got %q", s.PlaylistFormat))
	}
	switch strings.ToLower(s.LogFormat) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", s.LogFormat))
	}
	return errors.Join(errs...)
}

// ToTagConfig converts settings to the tagger configuration.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	cfg.EmbedCoverArt = s.EmbedCoverArt
	return cfg
}

// ToPlaylistCreator returns the playlist writer described by the settings,
// or nil when playlists are disabled.
func (s *Settings) ToPlaylistCreator() *audio.PlaylistCreator {
	if !s.CreatePlaylist {
		return nil
	}
	return audio.NewPlaylistCreator(audio.ParsePlaylistFormat(s.PlaylistFormat), s.M3UExtended)
}
