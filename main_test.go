package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trek/internal/config"
	"trek/internal/game"
	"trek/internal/log"
)

func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{
		Game: config.GameConfig{
			PlayerName: "Tester",
			PlayerShip: game.DefaultPlayerShip,
			Seed:       7,
			Language:   "en",
		},
		Storage: config.StorageConfig{SavePath: filepath.Join(t.TempDir(), "save.db")},
	}
	return &App{Config: cfg, Out: &out, JSON: true}, &out
}

func runJSON(t *testing.T, app *App, out *bytes.Buffer, args ...string) (output, error) {
	t.Helper()
	out.Reset()
	err := app.Run(args)
	var got output
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	}
	return got, err
}

func TestRunUsage(t *testing.T) {
	app, out := testApp(t)

	var usage *UsageError
	_, err := runJSON(t, app, out)
	assert.ErrorAs(t, err, &usage)

	_, err = runJSON(t, app, out, "warp")
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "warp", usage.Command)

	_, err = runJSON(t, app, out, "jump", "1", "2")
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Reason, "jump QX QY RX RY")

	_, err = runJSON(t, app, out, "rest", "soon")
	assert.ErrorAs(t, err, &usage)
	assert.Zero(t, out.Len())
}

func TestRunNewThenRest(t *testing.T) {
	app, out := testApp(t)

	got, err := runJSON(t, app, out, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Command)
	assert.Contains(t, got.Message, "Tester")
	assert.True(t, game.Epoch.Equal(got.Status.Clock))
	assert.Equal(t, "Tester", got.Status.Player)

	got, err = runJSON(t, app, out, "rest", "5")
	require.NoError(t, err)
	assert.True(t, game.Epoch.Add(5*time.Hour).Equal(got.Status.Clock))
	assert.Equal(t, 5, got.Status.Stats.Other[game.StatHoursRested])

	// status does not save, the clock stays where rest left it
	got, err = runJSON(t, app, out, "status")
	require.NoError(t, err)
	assert.True(t, game.Epoch.Add(5*time.Hour).Equal(got.Status.Clock))
}

func TestRunStartsGameWithoutSave(t *testing.T) {
	app, out := testApp(t)

	got, err := runJSON(t, app, out, "shields", "off")
	require.NoError(t, err)
	require.NotNil(t, got.Status.Ship.Shields)
	assert.False(t, got.Status.Ship.Shields.On)

	got, err = runJSON(t, app, out, "status")
	require.NoError(t, err)
	assert.False(t, got.Status.Ship.Shields.On)
}

func TestRunRejected(t *testing.T) {
	app, out := testApp(t)
	_, err := runJSON(t, app, out, "new")
	require.NoError(t, err)

	got, err := runJSON(t, app, out, "rest", "0")
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.ErrorIs(t, err, game.ErrInvalidHours)
	assert.NotEmpty(t, got.Error)
	assert.True(t, game.Epoch.Equal(got.Status.Clock))

	_, err = runJSON(t, app, out, "scan", "999999999")
	assert.ErrorAs(t, err, &rejected)
}

func TestRunSpawnAndTargets(t *testing.T) {
	app, out := testApp(t)
	_, err := runJSON(t, app, out, "new")
	require.NoError(t, err)

	got, err := runJSON(t, app, out, "spawn", "raiders", "Raider", "Skiff")
	require.NoError(t, err)
	assert.Contains(t, got.Message, "Raider Skiff")
	assert.Equal(t, 1, got.Status.Stats.Other[game.StatShipsMet])

	// spawned ships arrive outside the player's region
	got, err = runJSON(t, app, out, "targets")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Message)
}

func TestRunTextOutput(t *testing.T) {
	app, out := testApp(t)
	app.JSON = false

	require.NoError(t, app.Run([]string{"new"}))
	assert.Contains(t, out.String(), "Welcome aboard")
	assert.Contains(t, out.String(), "Tester")

	out.Reset()
	err := app.Run([]string{"tomain", "-5"})
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Rejected:")
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	logFile := filepath.Join(dir, "trek.log")
	t.Setenv(config.EnvSavePath, filepath.Join(dir, "save.db"))
	t.Setenv(config.EnvLogFile, logFile)
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvSeed, "5")
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		require.NoError(t, log.SetLevel("info"))
	})

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, run([]string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "trek dev")

	assert.Equal(t, exitUsage, run([]string{"-bogus"}, &stdout, &stderr))
	assert.Equal(t, exitUsage, run(nil, &stdout, &stderr))
	assert.Equal(t, exitUsage, run([]string{"warp"}, &stdout, &stderr))

	stdout.Reset()
	assert.Equal(t, exitOK, run([]string{"new"}, &stdout, &stderr))
	var got output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "new", got.Command)

	assert.Equal(t, exitRejected, run([]string{"rest", "0"}, &stdout, &stderr))

	// everything logged before exiting is on disk once the log is closed
	log.Close()
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "game saved")
	assert.Contains(t, string(data), "command rejected")
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
