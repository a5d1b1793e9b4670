package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/quest/pkg/app"
	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

// run executes quest with args against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--dir", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err)
	return out
}

func TestNoArgsLaunchesTUI(t *testing.T) {
	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	called := false
	launchTUIFunc = func(a *app.App) error {
		called = true
		assert.Equal(t, 3, a.Engine.Len())
		return nil
	}

	_, err := run(t, t.TempDir())
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestListSeeded(t *testing.T) {
	out := mustRun(t, t.TempDir(), "list")
	assert.Equal(t, strings.Join([]string{
		"1. [ ] Run Marathon - Finish a marathon",
		"2. [∞] Read Scriptures - Daily scripture study",
		"3. [ ] Completed 0/3 Attend Temple - Go to the temple multiple times",
	}, "\n")+"\n", out)
}

func TestAddAndRecord(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "checklist", "Journal", "-d", "Write daily", "-p", "5", "-n", "2", "-b", "20")
	assert.Contains(t, out, "Created 4. [ ] Completed 0/2 Journal")

	out = mustRun(t, dir, "record", "4")
	assert.Contains(t, out, "You gained 5 points! Total score: 5")

	out = mustRun(t, dir, "record", "4")
	assert.Contains(t, out, "You gained 25 points! Total score: 30")
	assert.Contains(t, out, "Badge earned: Checklist Master: Journal")

	out = mustRun(t, dir, "record", "4")
	assert.Contains(t, out, "already complete")

	out = mustRun(t, dir, "score")
	assert.Contains(t, out, "Your score: 30 (level 0)")
	assert.Contains(t, out, " - Checklist Master: Journal")
}

func TestAddInvalid(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "checklist", "Journal", "-p", "5")
	assert.ErrorIs(t, err, goal.ErrInvalidConfiguration)

	_, err = run(t, dir, "add", "weekly", "Journal")
	assert.ErrorIs(t, err, goal.ErrInvalidConfiguration)
}

func TestRecordOutOfRange(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "record", "9")
	assert.ErrorIs(t, err, engine.ErrIndexOutOfRange)

	_, err = run(t, dir, "record", "x")
	assert.Error(t, err)
}

func TestRecordJSON(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "--json", "record", "1")

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, float64(1000), res["awarded"])
	assert.Equal(t, float64(1), res["level"])
	assert.Equal(t, true, res["level_up"])
}

func TestSaveLoadSaves(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "record", "2")
	mustRun(t, dir, "save", "backup")
	mustRun(t, dir, "record", "2")

	out := mustRun(t, dir, "load", "backup")
	assert.Contains(t, out, "Loaded backup: 3 goals, score 100")

	// The loaded save stays active for later commands.
	out = mustRun(t, dir, "score")
	assert.Contains(t, out, "Your score: 100")

	out = mustRun(t, dir, "saves")
	assert.Contains(t, out, "* backup")
	assert.Contains(t, out, "  goals")
}

func TestLoadCorruptKeepsActiveSave(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "record", "1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saves", "bad.txt"), []byte("10\nChecklist|T|D|10|abc|0|5\n"), 0644))

	_, err := run(t, dir, "load", "bad")
	assert.ErrorIs(t, err, goal.ErrCorruptData)

	out := mustRun(t, dir, "score")
	assert.Contains(t, out, "Your score: 1000 (level 1)")
}

func TestRecoverFromCorruptActiveSave(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "record", "1")
	mustRun(t, dir, "save", "backup")
	good := filepath.Join(t.TempDir(), "good.txt")
	require.NoError(t, os.WriteFile(good, []byte(mustRun(t, dir, "export")), 0644))

	active := filepath.Join(dir, "saves", "goals.txt")
	corrupt := func() {
		t.Helper()
		require.NoError(t, os.WriteFile(active, []byte("0\nChecklist|T|D|10|abc|0|5\n"), 0644))
	}

	corrupt()
	_, err := run(t, dir, "list")
	assert.ErrorIs(t, err, goal.ErrCorruptData)
	assert.Contains(t, mustRun(t, dir, "saves"), "* goals")

	mustRun(t, dir, "import", good)
	assert.Contains(t, mustRun(t, dir, "score"), "Your score: 1000 (level 1)")

	corrupt()
	mustRun(t, dir, "reset")
	assert.Contains(t, mustRun(t, dir, "list"), "No goals found.")

	corrupt()
	out := mustRun(t, dir, "load", "backup")
	assert.Contains(t, out, "Loaded backup: 3 goals, score 1000")
	assert.Contains(t, mustRun(t, dir, "score"), "Your score: 1000 (level 1)")
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	mustRun(t, src, "record", "3")
	mustRun(t, src, "record", "3")
	mustRun(t, src, "record", "3")
	exported := mustRun(t, src, "export")
	assert.True(t, strings.HasPrefix(exported, "350\n"))
	assert.Contains(t, exported, "BADGE|Checklist Master: Attend Temple\n")

	file := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, os.WriteFile(file, []byte(exported), 0644))

	dst := t.TempDir()
	out := mustRun(t, dst, "import", file)
	assert.Contains(t, out, "Imported 3 goals into goals")
	assert.Equal(t, exported, mustRun(t, dst, "export"))
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "record", "1")
	mustRun(t, dir, "reset")

	assert.Contains(t, mustRun(t, dir, "list"), "No goals found.")
	assert.Contains(t, mustRun(t, dir, "score"), "Your score: 0")

	mustRun(t, dir, "reset", "--seed")
	assert.Contains(t, mustRun(t, dir, "list"), "Run Marathon")
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "record", "2")
	mustRun(t, dir, "record", "1")
	mustRun(t, dir, "record", "1") // no award, not journaled

	out := mustRun(t, dir, "--json", "history")
	var events []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "Run Marathon", events[0]["goal"])
	assert.Equal(t, float64(1100), events[0]["score"])
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "init", "--remote", "https://example.com/me/quest.git")
	assert.Contains(t, out, "Remote set to: https://example.com/me/quest.git")

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.com/me/quest.git")
}
