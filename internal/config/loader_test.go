package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user and local search locations at empty temp dirs.
func isolate(t *testing.T) (home, local string) {
	t.Helper()
	home = t.TempDir()
	local = t.TempDir()
	t.Setenv("HOME", home)

	prev := localDir
	localDir = local
	t.Cleanup(func() { localDir = prev })
	return home, local
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultTetrisYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTetrisEmbedded(t *testing.T) {
	isolate(t)

	cfg, src, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height)
	assert.Equal(t, 12, cfg.Gameplay.GravityTicks)
	assert.False(t, cfg.Gameplay.StrictRotation)
}

func TestLoadTetrisCustomPartial(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	writeFile(t, path, "gameplay:\n  strict_rotation: true\n")

	cfg, src, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, SourceCustom, src)
	assert.True(t, cfg.Gameplay.StrictRotation)
	// Unlisted keys keep their defaults
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 12, cfg.Gameplay.GravityTicks)
}

func TestLoadTetrisCustomMissing(t *testing.T) {
	isolate(t)

	_, _, err := LoadTetris(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTetrisCustomInvalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "board:\n  width: 2\n")

	_, _, err := LoadTetris(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadTetrisCustomMalformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, path, "board: [not, a, map\n")

	_, _, err := LoadTetris(path)
	assert.Error(t, err)
}

func TestLoadTetrisSearchOrder(t *testing.T) {
	home, local := isolate(t)

	writeFile(t, filepath.Join(local, "tetris.yaml"), "board:\n  width: 12\n")
	cfg, src, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	assert.Equal(t, 12, cfg.Board.Width)

	// The user directory wins over the local one
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "board:\n  width: 14\n")
	cfg, src, err = LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, SourceUser, src)
	assert.Equal(t, 14, cfg.Board.Width)
}

func TestLoadTetrisSkipsInvalidUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "gameplay:\n  gravity_ticks: 0\n")

	_, src, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TetrisConfig)
		wantErr bool
	}{
		{"defaults", func(*TetrisConfig) {}, false},
		{"narrow board", func(c *TetrisConfig) { c.Board.Width = 3 }, true},
		{"minimum board", func(c *TetrisConfig) { c.Board.Width, c.Board.Height = 4, 4 }, false},
		{"short board", func(c *TetrisConfig) { c.Board.Height = 0 }, true},
		{"zero gravity", func(c *TetrisConfig) { c.Gameplay.GravityTicks = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Gameplay.GravityTicks = 30

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gravity_ticks: 30")

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}
