package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tilegrid/internal/layout"
	"github.com/rshade/tilegrid/internal/selection"
	"github.com/rshade/tilegrid/internal/uictx"
	"github.com/rshade/tilegrid/internal/window"
)

// Environment variables read by ApplyEnv and ResolveConfigPath.
const (
	EnvLogLevel = "TILEGRID_LOG_LEVEL"
	EnvDPIScale = "TILEGRID_DPI_SCALE"
	EnvConfig   = "TILEGRID_CONFIG"
)

// Default values.
const (
	DefaultTileWidth  = 18
	DefaultTileHeight = 4
	DefaultTileMargin = 1
	DefaultRowHeight  = 1
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Config is the tilegrid configuration file.
type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Display DisplayConfig `yaml:"display"`
	List    ListConfig    `yaml:"list"`
	Logging LoggingConfig `yaml:"logging"`
}

// LayoutConfig is the tile geometry of the tile box.
type LayoutConfig struct {
	ItemWidth    int32  `yaml:"item_width"`
	ItemHeight   int32  `yaml:"item_height"`
	MarginX      int32  `yaml:"margin_x"`
	MarginY      int32  `yaml:"margin_y"`
	FixedColumns int    `yaml:"fixed_columns"`
	TrimPolicy   string `yaml:"trim_policy"`
}

// DisplayConfig holds the UI context settings.
type DisplayConfig struct {
	DPIScale int  `yaml:"dpi_scale"`
	Strict   bool `yaml:"strict"`
}

// ListConfig configures the list control.
type ListConfig struct {
	RowHeight      int32  `yaml:"row_height"`
	DeletePolicy   string `yaml:"delete_policy"`
	TrackOffscreen bool   `yaml:"track_offscreen"`
	DefaultSort    string `yaml:"default_sort"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Layout: LayoutConfig{
			ItemWidth:  DefaultTileWidth,
			ItemHeight: DefaultTileHeight,
			MarginX:    DefaultTileMargin,
			MarginY:    DefaultTileMargin,
			TrimPolicy: window.TrimAwayFromScroll.String(),
		},
		Display: DisplayConfig{DPIScale: uictx.DefaultDPIScale},
		List: ListConfig{
			RowHeight:      DefaultRowHeight,
			DeletePolicy:   selection.AdvanceOnDelete.String(),
			TrackOffscreen: true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load returns the defaults overlaid with the file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if scale := os.Getenv(EnvDPIScale); scale != "" {
		v, err := strconv.Atoi(scale)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvDPIScale, scale, err)
		}
		c.Display.DPIScale = v
	}
	return nil
}

// Validate checks every section and reports all problems found.
func (c *Config) Validate() error {
	var errs []error
	l := c.Layout
	if l.ItemHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: item_height must be positive, got %d", ErrInvalidLayout, l.ItemHeight))
	}
	if l.ItemWidth < 0 || l.MarginX < 0 || l.MarginY < 0 || l.FixedColumns < 0 {
		errs = append(errs, fmt.Errorf("%w: sizes and margins must not be negative", ErrInvalidLayout))
	}
	if _, ok := window.ParseTrimPolicy(l.TrimPolicy); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown trim_policy %q", ErrInvalidConfig, l.TrimPolicy))
	}
	if c.Display.DPIScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: dpi_scale must be positive, got %d", ErrInvalidConfig, c.Display.DPIScale))
	}
	if c.List.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: row_height must be positive, got %d", ErrInvalidLayout, c.List.RowHeight))
	}
	if _, ok := selection.ParseDeletePolicy(c.List.DeletePolicy); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown delete_policy %q", ErrInvalidConfig, c.List.DeletePolicy))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging level: %w", ErrInvalidConfig, err))
	}
	return errors.Join(errs...)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Options converts the tile geometry for layout.New.
func (l LayoutConfig) Options() layout.Options {
	return layout.Options{
		ItemWidth:    l.ItemWidth,
		ItemHeight:   l.ItemHeight,
		MarginX:      l.MarginX,
		MarginY:      l.MarginY,
		FixedColumns: l.FixedColumns,
	}
}

// WindowOptions converts the pool settings for window.New.
func (l LayoutConfig) WindowOptions() []window.Option {
	p, _ := window.ParseTrimPolicy(l.TrimPolicy)
	return []window.Option{window.WithTrimPolicy(p)}
}

// Options returns the row geometry of the list control.
func (l ListConfig) Options() layout.Options {
	return layout.ListOptions(l.RowHeight, 0)
}

// SelectionOptions converts the selection settings for selection.New.
func (l ListConfig) SelectionOptions() []selection.Option {
	p, _ := selection.ParseDeletePolicy(l.DeletePolicy)
	return []selection.Option{
		selection.WithDeletePolicy(p),
		selection.WithTrackOffscreen(l.TrackOffscreen),
	}
}

// Context builds the UI context for the display settings.
func (d DisplayConfig) Context(logger zerolog.Logger, factory uictx.RenderFactory) *uictx.Context {
	return uictx.New(
		uictx.WithDPIScale(d.DPIScale),
		uictx.WithStrict(d.Strict),
		uictx.WithLogger(logger),
		uictx.WithRenderFactory(factory),
	)
}
