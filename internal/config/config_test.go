package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edward-ap/rangeslider/internal/preset"
	"github.com/edward-ap/rangeslider/internal/slider"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	_ = os.Remove(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Slider != slider.DefaultState() {
		t.Errorf("Slider = %+v, want defaults", cfg.Slider)
	}
	if cfg.LastPreset != DefaultPreset {
		t.Errorf("LastPreset = %q, want %q", cfg.LastPreset, DefaultPreset)
	}
	if cfg.WindowW != DefaultWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, DefaultWidth)
	}
	if cfg.WindowH != DefaultHeight {
		t.Errorf("WindowH = %d, want %d", cfg.WindowH, DefaultHeight)
	}
	if cfg.CustomPresets == nil {
		t.Fatal("CustomPresets should be initialised")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, got error: %v", path, err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	cfg := NewDefault()
	cfg.Slider.IsRange = true
	cfg.Slider.Orientation = slider.Vertical
	cfg.Slider.Values = [2]float64{10, 20}
	cfg.UpsertPreset(preset.Preset{Name: "Mine", State: cfg.Slider})
	require.NoError(t, cfg.Save())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Slider, got.Slider)
	require.Len(t, got.CustomPresets, 1)
	assert.Equal(t, "Mine", got.CustomPresets[0].Name)
}

func TestLoadFileYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slider.yaml")
	doc := []byte("slider:\n  max: 50\n  orientation: vertical\n  values: [5, 45]\nwindowW: 10\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Slider.Min)
	assert.Equal(t, 50.0, cfg.Slider.Max)
	assert.Equal(t, 1.0, cfg.Slider.Step)
	assert.True(t, cfg.Slider.IsTips)
	assert.Equal(t, slider.Vertical, cfg.Slider.Orientation)
	assert.Equal(t, [2]float64{5, 45}, cfg.Slider.Values)
	assert.Equal(t, MinWindowWidth, cfg.WindowW)
}

func TestSaveFileYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yml")
	cfg := NewDefault()
	cfg.Slider.Step = 2.5
	cfg.LastPreset = "Rating"
	require.NoError(t, cfg.SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	txt := filepath.Join(dir, "cfg.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = LoadFile(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"slider": {"orientation": "diagonal"}}`), 0o644))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "config parse error")
}

func TestCustomPresets(t *testing.T) {
	cfg := NewDefault()
	cfg.UpsertPreset(preset.Preset{Name: "A", State: slider.DefaultState()})
	s := slider.DefaultState()
	s.Max = 10
	cfg.UpsertPreset(preset.Preset{Name: "a", State: s})

	require.Len(t, cfg.CustomPresets, 1)
	assert.Equal(t, 10.0, cfg.CustomPresets[0].State.Max)
	assert.Len(t, cfg.Presets(), len(preset.DefaultPresets())+1)

	assert.True(t, cfg.DeletePreset("A"))
	assert.False(t, cfg.DeletePreset("A"))
	assert.Empty(t, cfg.CustomPresets)
}

func TestApplyRuntimeDefaultsDropsUnnamedPresets(t *testing.T) {
	cfg := &Config{CustomPresets: []preset.Preset{{Name: "  "}, {Name: " keep "}}}
	cfg.applyRuntimeDefaults()
	require.Len(t, cfg.CustomPresets, 1)
	assert.Equal(t, "keep", cfg.CustomPresets[0].Name)
	assert.Equal(t, DefaultPreset, cfg.LastPreset)
	assert.Equal(t, DefaultHeight, cfg.WindowH)
}

func overrideConfigEnv(tempDir string) func() {
	originals := map[string]string{
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
		"USERPROFILE":     os.Getenv("USERPROFILE"),
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"HOME":            os.Getenv("HOME"),
	}

	if runtime.GOOS == "windows" {
		os.Setenv("APPDATA", tempDir)
		os.Setenv("LOCALAPPDATA", tempDir)
		os.Setenv("USERPROFILE", tempDir)
	} else {
		xdg := filepath.Join(tempDir, "xdg")
		_ = os.MkdirAll(xdg, 0o755)
		os.Setenv("XDG_CONFIG_HOME", xdg)
		os.Setenv("HOME", tempDir)
	}

	return func() {
		for k, v := range originals {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}
