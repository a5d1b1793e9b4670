// Package app wires configuration, logging, storage and the engine for one session.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/stefanpenner/quest/pkg/config"
	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
	"github.com/stefanpenner/quest/pkg/journal"
	"github.com/stefanpenner/quest/pkg/logging"
	"github.com/stefanpenner/quest/pkg/store"
	gsync "github.com/stefanpenner/quest/pkg/sync"
)

// Options controls how a session is opened.
type Options struct {
	DataDir string // resolved with store.ResolveDataDir when empty
	Save    string // overrides the configured save name
	Logger  *slog.Logger

	// SkipLoad starts with an empty engine instead of reading the active save,
	// for commands that replace the state and must work when the save is corrupt.
	SkipLoad bool
}

// App is an open session on one save file.
type App struct {
	DataDir  string
	Config   *config.Config
	Store    *store.Store
	Engine   *engine.Engine
	Journal  *journal.Journal // nil when disabled
	Log      *slog.Logger
	SaveName string

	closers []io.Closer
}

// Open loads config, opens logs and the journal, and restores the active save.
// A missing save starts empty, or with the example goals when seeding is on.
func Open(opts Options) (*App, error) {
	dataDir := store.ResolveDataDir(opts.DataDir)

	st, err := store.NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	a := &App{DataDir: dataDir, Config: cfg, Store: st, Log: opts.Logger}
	if a.Log == nil {
		logger, closer, err := logging.New(dataDir, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
		a.Log = logger
		a.closers = append(a.closers, closer)
	}

	a.SaveName = store.Slug(cfg.Save)
	if opts.Save != "" {
		a.SaveName = store.Slug(opts.Save)
	}

	if cfg.Journal {
		j, err := journal.Open(filepath.Join(dataDir, journal.FileName))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Journal = j
		a.closers = append(a.closers, j)
	}

	a.Engine = engine.New(a.Log)
	if opts.SkipLoad {
		return a, nil
	}
	if err := a.Reload(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Reload restores the active save from disk. On a parse error the engine keeps its state.
func (a *App) Reload() error {
	err := a.Store.LoadInto(a.SaveName, a.Engine)
	if errors.Is(err, store.ErrSaveNotFound) {
		a.Engine.Reset()
		if a.Config.Seed {
			a.Engine.Seed()
		}
		return nil
	}
	return err
}

// SavePath is the file backing the active save.
func (a *App) SavePath() string {
	return a.Store.SavePath(a.SaveName)
}

// Save writes the engine to the active save and, when configured, commits it.
func (a *App) Save() error {
	return a.SaveAs(a.SaveName)
}

// SaveAs writes the engine to a named save.
func (a *App) SaveAs(name string) error {
	if err := a.Store.Save(name, a.Engine.Snapshot()); err != nil {
		return err
	}
	a.Log.Info("saved", "save", store.Slug(name), "score", a.Engine.Score())

	if a.Config.AutoCommit {
		if _, err := gsync.Commit(a.DataDir, "save "+store.Slug(name)); err != nil && !errors.Is(err, gsync.ErrNotRepository) {
			return err
		}
	}
	return nil
}

// LoadFrom switches the session to another save. On error nothing changes.
func (a *App) LoadFrom(name string) error {
	if err := a.Store.LoadInto(name, a.Engine); err != nil {
		return err
	}
	a.SaveName = store.Slug(name)
	return nil
}

// AddGoal adds a goal to the engine.
func (a *App) AddGoal(kind goal.Kind, title, description string, points int, opts goal.Options) (int, error) {
	return a.Engine.AddGoal(kind, title, description, points, opts)
}

// Record records an event on the goal at index and journals any award.
// Journal failures are logged, not returned.
func (a *App) Record(index int) (engine.Result, error) {
	res, err := a.Engine.RecordEvent(index)
	if err != nil || res.Awarded <= 0 || a.Journal == nil {
		return res, err
	}

	ev := &journal.Event{
		SaveName: a.SaveName,
		Goal:     res.Title,
		Kind:     string(res.Kind),
		Awarded:  res.Awarded,
		Score:    res.Score,
		Level:    res.Level,
		Badge:    res.Badge,
	}
	if jerr := a.Journal.Append(ev); jerr != nil {
		a.Log.Warn("journal append failed", "err", jerr)
	}
	return res, nil
}

// History returns recent journal events for the active save.
func (a *App) History(limit int) ([]journal.Event, error) {
	if a.Journal == nil {
		return nil, fmt.Errorf("journal is disabled in %s", config.YAMLFile)
	}
	return a.Journal.Recent(a.SaveName, limit)
}

// Close releases the journal and log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
