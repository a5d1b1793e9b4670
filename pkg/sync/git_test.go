package sync

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRepo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitRepo(dir, "https://example.com/me/quest.git"))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	remote, err := repo.Remote("origin")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/me/quest.git"}, remote.Config().URLs)

	// Re-running replaces the remote.
	require.NoError(t, InitRepo(dir, "https://example.com/me/other.git"))
	repo, err = git.PlainOpen(dir)
	require.NoError(t, err)
	remote, err = repo.Remote("origin")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/me/other.git"}, remote.Config().URLs)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "journal.db")
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitRepo(dir, ""))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "saves"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saves", "goals.txt"), []byte("0\n"), 0644))

	committed, err := Commit(dir, "save goals")
	require.NoError(t, err)
	assert.True(t, committed)

	committed, err = Commit(dir, "again")
	require.NoError(t, err)
	assert.False(t, committed)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	c, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "save goals", c.Message)
}

func TestCommitWithoutRepo(t *testing.T) {
	_, err := Commit(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestSyncRepoWithoutRepo(t *testing.T) {
	err := SyncRepo(t.TempDir(), io.Discard)
	assert.ErrorIs(t, err, ErrNotRepository)
}
