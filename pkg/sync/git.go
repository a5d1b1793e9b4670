package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned when the data directory has not been initialized.
var ErrNotRepository = errors.New("not a git repository. Run 'quest init' first")

// Files that stay out of version control.
const gitignore = "logs/\njournal.db\n.save-*\n"

// InitRepo makes the data directory a git repository and points origin at remote.
// It is safe to call on an existing repository.
func InitRepo(dir, remote string) error {
	repo, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(dir)
	}
	if err != nil {
		return fmt.Errorf("initializing repository: %w", err)
	}

	ignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(ignorePath, []byte(gitignore), 0644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
	}

	if remote == "" {
		return nil
	}

	// Replace any existing origin.
	if err := repo.DeleteRemote("origin"); err != nil && !errors.Is(err, git.ErrRemoteNotFound) {
		return fmt.Errorf("removing remote: %w", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remote}}); err != nil {
		return fmt.Errorf("setting remote: %w", err)
	}
	return nil
}

// Commit stages everything in the data directory and commits it.
// It returns false when there was nothing to commit.
func Commit(dir, msg string) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, ErrNotRepository
	}
	if err != nil {
		return false, fmt.Errorf("opening repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("staging changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	if msg == "" {
		msg = "sync " + time.Now().Format("2006-01-02 15:04:05")
	}
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "quest", Email: "quest@localhost", When: time.Now()},
	})
	if err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return true, nil
}

// SyncRepo synchronizes the data directory with the remote.
// Strategy: commit local changes, rebase, fallback to merge, push.
// Progress goes to out.
func SyncRepo(dir string, out io.Writer) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		return ErrNotRepository
	}

	git := func(args ...string) *exec.Cmd {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Stdout = out
		cmd.Stderr = out
		return cmd
	}

	fmt.Fprintln(out, "Committing local changes...")
	if _, err := Commit(dir, ""); err != nil {
		return err
	}

	fmt.Fprintln(out, "Pulling...")
	if err := git("pull", "--rebase").Run(); err != nil {
		fmt.Fprintln(out, "Rebase failed, trying merge...")
		git("rebase", "--abort").Run()

		if err := git("pull", "--no-rebase").Run(); err != nil {
			git("merge", "--abort").Run()
			return fmt.Errorf("sync failed: could not rebase or merge. Resolve conflicts manually")
		}
	}

	fmt.Fprintln(out, "Pushing...")
	if err := git("push").Run(); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	fmt.Fprintln(out, "Sync complete.")
	return nil
}
