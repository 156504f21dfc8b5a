package config_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tilegrid/internal/config"
	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/uictx"
)

func TestNew_DefaultsAreValid(t *testing.T) {
	cfg := config.New()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Display.DPIScale)
	assert.Equal(t, "advance", cfg.List.DeletePolicy)
	assert.True(t, cfg.List.TrackOffscreen)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{name: "zero item height", mutate: func(c *config.Config) { c.Layout.ItemHeight = 0 }, wantErr: config.ErrInvalidLayout},
		{name: "negative margin", mutate: func(c *config.Config) { c.Layout.MarginX = -1 }, wantErr: config.ErrInvalidLayout},
		{name: "zero row height", mutate: func(c *config.Config) { c.List.RowHeight = 0 }, wantErr: config.ErrInvalidLayout},
		{name: "unknown trim policy", mutate: func(c *config.Config) { c.Layout.TrimPolicy = "middle" }, wantErr: config.ErrInvalidConfig},
		{name: "unknown delete policy", mutate: func(c *config.Config) { c.List.DeletePolicy = "explode" }, wantErr: config.ErrInvalidConfig},
		{name: "zero dpi", mutate: func(c *config.Config) { c.Display.DPIScale = 0 }, wantErr: config.ErrInvalidConfig},
		{name: "bad log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: config.ErrInvalidConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := config.New()
	cfg.Layout.ItemHeight = -3
	cfg.List.DeletePolicy = "nope"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidLayout)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)

	path := writeOverlay(t, "list:\n  row_height: 2\n")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), cfg.List.RowHeight)

	_, err = config.Load(path + ".missing")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "trace")
	t.Setenv(config.EnvDPIScale, "125")

	cfg := config.New()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, 125, cfg.Display.DPIScale)

	t.Setenv(config.EnvDPIScale, "big")
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestMarshal_RoundTrips(t *testing.T) {
	cfg := config.New()
	cfg.List.DefaultSort = "name:desc"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_sort:")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
}

func TestBridges(t *testing.T) {
	cfg := config.New()
	cfg.Layout.FixedColumns = 3
	cfg.Display.DPIScale = 200
	cfg.List.RowHeight = 2

	assert.Equal(t, layout.Options{
		ItemWidth: 18, ItemHeight: 4, MarginX: 1, MarginY: 1, FixedColumns: 3,
	}, cfg.Layout.Options())
	assert.Equal(t, layout.ListOptions(2, 0), cfg.List.Options())
	assert.Len(t, cfg.Layout.WindowOptions(), 1)
	assert.Len(t, cfg.List.SelectionOptions(), 2)

	ctx := cfg.Display.Context(zerolog.Nop(), nil)
	assert.Equal(t, 200, ctx.DPIScale())
	assert.IsType(t, uictx.RuneWidthFactory{}, ctx.Factory())
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", got.Output)

	lc.File = "/var/log/tilegrid.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/var/log/tilegrid.log", got.File)
	assert.Equal(t, "debug", got.Level)
}
