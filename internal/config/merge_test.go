package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tilegrid/internal/config"
)

// newDefaultTarget returns a Config with known non-default values so tests
// can verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	cfg := config.New()
	cfg.Layout.ItemWidth = 30
	cfg.Display.DPIScale = 150
	cfg.List.DefaultSort = "name:asc"
	cfg.Logging.Level = "warn"
	return cfg
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
  format: json
`)

	err := config.ShallowMergeYAML(target, overlay)
	require.NoError(t, err)

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)

	// Other sections should be unchanged.
	assert.Equal(t, int32(30), target.Layout.ItemWidth)
	assert.Equal(t, 150, target.Display.DPIScale)
	assert.Equal(t, "name:asc", target.List.DefaultSort)
}

func TestShallowMergeYAML_SectionReplacesFromDefaults(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
layout:
  item_height: 6
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, int32(6), target.Layout.ItemHeight)
	assert.Equal(t, int32(config.DefaultTileWidth), target.Layout.ItemWidth,
		"fields absent from an overlaid section take their defaults")
	assert.Equal(t, "away_from_scroll", target.Layout.TrimPolicy)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
display:
  dpi_scale: 200
  strict: true
list:
  delete_policy: clear
  track_offscreen: false
  default_sort: size:desc
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 200, target.Display.DPIScale)
	assert.True(t, target.Display.Strict)
	assert.Equal(t, "clear", target.List.DeletePolicy)
	assert.False(t, target.List.TrackOffscreen)
	assert.Equal(t, "size:desc", target.List.DefaultSort)
	assert.Equal(t, "warn", target.Logging.Level)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# only a comment\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  *config.Config
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "nil target",
			target:  nil,
			path:    func(t *testing.T) string { return writeOverlay(t, "") },
			wantErr: "nil target",
		},
		{
			name:    "missing file",
			target:  config.New(),
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantErr: "reading overlay file",
		},
		{
			name:    "malformed yaml",
			target:  config.New(),
			path:    func(t *testing.T) string { return writeOverlay(t, "layout: [unclosed") },
			wantErr: "parsing overlay YAML",
		},
		{
			name:    "wrong section type",
			target:  config.New(),
			path:    func(t *testing.T) string { return writeOverlay(t, "layout:\n  item_height: tall\n") },
			wantErr: `applying overlay section "layout"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := config.ShallowMergeYAML(tc.target, tc.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
