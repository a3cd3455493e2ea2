package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Fill:     "=",
		Open:     "<",
		Close:    ">",
		Progress: ModeAuto,
		Color:    true,
		Delay:    time.Second,
	}, cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "barrow")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName),
		[]byte("fill: '#'\nprogress: plain\ndelay: 250ms\n"), 0o600))

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "#", cfg.Fill)
	assert.Equal(t, ModePlain, cfg.Progress)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, "<", cfg.Open)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fill: '#'\n"), 0o600))
	t.Setenv("BARROW_FILL", "+")

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "+", cfg.Fill)
}

func TestInit_ExplicitFileMissing(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidProgressMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BARROW_PROGRESS", "fancy")

	v := viper.New()
	require.NoError(t, Init(v, ""))

	_, err := Load(v)
	require.ErrorContains(t, err, `invalid progress mode "fancy"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "auto", cfg: Config{Progress: ModeAuto}},
		{name: "tty", cfg: Config{Progress: ModeTTY}},
		{name: "plain with delay", cfg: Config{Progress: ModePlain, Delay: time.Second}},
		{name: "unknown mode", cfg: Config{Progress: "loud"}, wantErr: true},
		{name: "negative delay", cfg: Config{Progress: ModeAuto, Delay: -time.Second}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
