package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/sidemenu/internal/config"
	"github.com/jask/sidemenu/internal/database"
	"github.com/jask/sidemenu/internal/service"
	"github.com/jask/sidemenu/internal/transition"
)

type testEnv struct {
	dir    string
	dbPath string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvConfig, filepath.Join(dir, "config.toml"))
	dbPath := filepath.Join(dir, "data", "sidemenu.db")
	t.Setenv("SIDEMENU_DATABASE_PATH", dbPath)
	t.Setenv("SIDEMENU_LOG_PATH", filepath.Join(dir, "sidemenu.log"))
	return testEnv{dir: dir, dbPath: dbPath}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestItemsListSeedsDefaults(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "items", "list")
	require.NoError(t, err)
	for _, title := range []string{"Home", "Profile", "Settings", "About"} {
		require.Contains(t, out, title)
	}
}

func TestItemsImportReplace(t *testing.T) {
	env := setupEnv(t)
	file := filepath.Join(env.dir, "items.yaml")
	require.NoError(t, os.WriteFile(file, []byte("items:\n  - title: Inbox\n  - title: Archive\n"), 0o644))

	out, err := run(t, "items", "import", "--replace", file)
	require.NoError(t, err)
	require.Contains(t, out, "imported 2 items")

	out, err = run(t, "items", "export")
	require.NoError(t, err)
	require.Contains(t, out, "destination: inbox")
	require.Contains(t, out, "destination: archive")
	require.NotContains(t, out, "home")
}

func TestItemsImportMissingFile(t *testing.T) {
	env := setupEnv(t)
	_, err := run(t, "items", "import", filepath.Join(env.dir, "nope.yaml"))
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, "history")
	require.NoError(t, err)
	require.Contains(t, out, "no transitions recorded")

	db, err := database.Open(env.dbPath)
	require.NoError(t, err)
	session := service.NewSession(db, zap.NewNop())
	require.NoError(t, session.Record(context.Background(), transition.Open, service.SourceKeyboard, ""))
	require.NoError(t, session.Record(context.Background(), transition.Closed, service.SourceSelect, "about"))
	require.NoError(t, db.Close())

	out, err = run(t, "history", "--limit", "1")
	require.NoError(t, err)
	require.Contains(t, out, "select")
	require.Contains(t, out, "about")
	require.NotContains(t, out, "keyboard")
}

func TestConfigInit(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(env.dir, "custom", "sidemenu.toml")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, path)
	require.FileExists(t, path)

	_, err = run(t, "--config", path, "config", "init")
	require.ErrorContains(t, err, "already exists")

	_, err = run(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	out, err = run(t, "--config", path, "config", "path")
	require.NoError(t, err)
	require.Contains(t, out, path)
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(env.dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[menu\nwidth = "), 0o644))

	_, err := run(t, "--config", path, "items", "list")
	require.Error(t, err)
}
