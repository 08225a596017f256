package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSavePath, EnvLogFile, EnvLogLevel, EnvSeed, EnvPlayerName, EnvPlayerShip, EnvShipData, EnvNameData, EnvLanguage} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Commander", cfg.Game.PlayerName)
	assert.Equal(t, "Venture Starship", cfg.Game.PlayerShip)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Equal(t, "en", cfg.Game.Language)
	assert.Equal(t, "trek.db", cfg.Storage.SavePath)
	assert.Equal(t, "trek_debug.log", cfg.Logging.File)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv(EnvPlayerName, "Kirk")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Kirk", cfg.Game.PlayerName)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvSavePath)
	os.Unsetenv(EnvPlayerShip)

	dir := t.TempDir()
	path := filepath.Join(dir, "trek.env")
	require.NoError(t, os.WriteFile(path, []byte("TREK_SAVE_PATH=saves/game.db\nTREK_PLAYER_SHIP=Federation Scout\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv(EnvSavePath)
		os.Unsetenv(EnvPlayerShip)
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saves/game.db", cfg.Storage.SavePath)
	assert.Equal(t, "Federation Scout", cfg.Game.PlayerShip)

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvSeed, "many"},
		{EnvSeed, "-3"},
		{EnvLogLevel, "chatty"},
		{EnvPlayerName, "   "},
		{EnvShipData, "/no/such/ships.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
