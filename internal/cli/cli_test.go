package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/oconnor663/founder/internal/errors"
	"github.com/oconnor663/founder/internal/testutil"
)

type testEnv struct {
	home    string
	cwd     string
	dataDir string
	bin     string
}

// setupEnv isolates the process from the real home, config and data dirs.
func setupEnv(t *testing.T) testEnv {
	t.Helper()

	home := testutil.TempDir(t)
	env := testEnv{
		home:    home,
		cwd:     filepath.Join(home, "work"),
		dataDir: filepath.Join(home, "data"),
		bin:     filepath.Join(home, "bin"),
	}
	require.NoError(t, os.MkdirAll(env.cwd, 0755))
	require.NoError(t, os.MkdirAll(env.bin, 0755))

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("FOUNDER_CONFIG", "")
	t.Setenv("FOUNDER_HISTORY_DIR", env.dataDir)
	t.Setenv("FOUNDER_LOG_LEVEL", "error")
	t.Chdir(env.cwd)
	return env
}

// script writes an executable shell script into the test bin dir.
func (e testEnv) script(t *testing.T, name, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(e.bin, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFindPrintsAndRecordsSelection(t *testing.T) {
	env := setupEnv(t)
	t.Setenv("FOUNDER_SCANNER_COMMAND", env.script(t, "scan", "echo a.txt\n"))
	t.Setenv("FOUNDER_SELECTOR_COMMAND", env.script(t, "select", "cat >/dev/null\nprintf 'foo\\n\\nfoo\\n'\n"))

	out, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "foo\n", out)

	out, err = execute(t, "-n")
	require.NoError(t, err)
	assert.Equal(t, "foo", out)

	want := filepath.Join(env.cwd, "foo")
	assert.Equal(t, []string{want, want}, testutil.ReadHistory(t, filepath.Join(env.dataDir, "history")))
}

func TestFindPropagatesSelectorExit(t *testing.T) {
	env := setupEnv(t)
	t.Setenv("FOUNDER_SCANNER_COMMAND", env.script(t, "scan", "true\n"))
	t.Setenv("FOUNDER_SELECTOR_COMMAND", env.script(t, "select", "cat >/dev/null\nprintf 'q\\n\\n'\nexit 130\n"))

	out, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, 130, ferrors.ExitCode(err))
	assert.Empty(t, out)
}

func TestFindMissingSelector(t *testing.T) {
	env := setupEnv(t)
	t.Setenv("FOUNDER_SCANNER_COMMAND", env.script(t, "scan", "true\n"))
	t.Setenv("FOUNDER_SELECTOR_COMMAND", filepath.Join(env.bin, "no-such-selector"))

	_, err := execute(t)
	require.Error(t, err)
	assert.True(t, ferrors.IsEnvironment(err))
	assert.Equal(t, 1, ferrors.ExitCode(err))
}

func TestAddHistoryAndClean(t *testing.T) {
	env := setupEnv(t)
	testutil.Touch(t, filepath.Join(env.cwd, "kept.txt"))

	_, err := execute(t, "add", "kept.txt")
	require.NoError(t, err)
	_, err = execute(t, "add", filepath.Join(env.cwd, "gone.txt"))
	require.NoError(t, err)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "~/work/gone.txt")
	assert.Contains(t, out, "~/work/kept.txt")
	assert.Less(t, strings.Index(out, "gone.txt"), strings.Index(out, "kept.txt"), "newest entry first")

	out, err = execute(t, "history", "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "kept.txt")

	out, err = execute(t, "clean")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 entries, 1 remaining.\n", out)

	assert.Equal(t,
		[]string{filepath.Join(env.cwd, "kept.txt")},
		testutil.ReadHistory(t, filepath.Join(env.dataDir, "history")))
}

func TestAddRejectsArgs(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "add")
	assert.Error(t, err)
}

func TestInfoJSON(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "info", "--json")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, filepath.Join(env.dataDir, "history"), info["history_path"])
	assert.EqualValues(t, 0, info["records"])
}

func TestConfigWriteAndPrint(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(env.home, "founder.toml")

	out, err := execute(t, "config", "--write", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "config", "--write", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, `mode_key = "ctrl-t"`)
}

func TestMissingExplicitConfig(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "info", "--config", filepath.Join(env.home, "missing.toml"))
	require.Error(t, err)
	assert.True(t, ferrors.IsNotFound(err))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3 (commit: abc, built: today)")
}
