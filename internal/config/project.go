package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rshade/tilegrid/internal/logging"
)

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".tilegrid"

// configFileName is the configuration file inside configDirName.
const configFileName = "config.yaml"

// ResolveConfigPath determines the configuration file to load.
// It checks (in order):
//  1. flagValue (--config CLI flag)
//  2. TILEGRID_CONFIG env var
//  3. $HOME/.tilegrid/config.yaml, when it exists
//
// Returns an empty string when no file applies. The returned path is
// absolute when it could be resolved.
func ResolveConfigPath(ctx context.Context, flagValue string) string {
	if flagValue != "" {
		return toAbs(ctx, flagValue)
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return toAbs(ctx, envPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(home, configDirName, configFileName)
	if _, statErr := os.Stat(candidate); statErr != nil {
		if !errors.Is(statErr, fs.ErrNotExist) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(statErr).
				Str("path", candidate).
				Msg("cannot stat user config")
		}
		return ""
	}
	return candidate
}

// LoadResolved loads the file ResolveConfigPath selects and applies the
// environment overrides. A file that cannot be merged is logged and the
// defaults are used; environment errors are returned.
func LoadResolved(ctx context.Context, flagValue string) (*Config, error) {
	path := ResolveConfigPath(ctx, flagValue)

	cfg, err := Load(path)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "load_config").
			Err(err).
			Str("path", path).
			Msg("failed to load config, using defaults")
		cfg = New()
	}

	if envErr := cfg.ApplyEnv(); envErr != nil {
		return nil, envErr
	}
	return cfg, nil
}

// toAbs converts path to an absolute path, keeping it unchanged on error.
func toAbs(ctx context.Context, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("path", path).
			Msg("failed to resolve absolute config path")
		return path
	}
	return abs
}
