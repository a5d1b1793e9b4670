package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/stefanpenner/quest/pkg/codec"
	"github.com/stefanpenner/quest/pkg/engine"
)

// DefaultSaveName is the save used when none is named.
const DefaultSaveName = "goals"

const saveExt = ".txt"

// ErrSaveNotFound is returned when loading or deleting a save that does not exist.
var ErrSaveNotFound = errors.New("save not found")

// SaveInfo describes a save file on disk.
type SaveInfo struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// Store manages save files under a data directory.
type Store struct {
	Root string // e.g., ~/.local/share/quest
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory structure if it doesn't exist.
func NewStore(root string) (*Store, error) {
	savesDir := filepath.Join(root, "saves")
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return nil, fmt.Errorf("creating saves directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// SavesDir returns the path to the saves directory.
func (s *Store) SavesDir() string {
	return filepath.Join(s.Root, "saves")
}

// SavePath returns the file path for a named save.
func (s *Store) SavePath(name string) string {
	return filepath.Join(s.SavesDir(), Slug(name)+saveExt)
}

// Slug normalizes a save name into a file name stem.
func Slug(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), saveExt)
	if name == "" {
		return DefaultSaveName
	}
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, name)
}

// Exists reports whether the named save is on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.SavePath(name))
	return err == nil
}

// Save writes the state to the named save file. The file is replaced atomically.
func (s *Store) Save(name string, st engine.State) error {
	path := s.SavePath(name)
	tmp, err := os.CreateTemp(s.SavesDir(), ".save-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := codec.Encode(tmp, st); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save %s: %w", Slug(name), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save %s: %w", Slug(name), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing save %s: %w", Slug(name), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing save %s: %w", Slug(name), err)
	}
	return nil
}

// Load reads and parses the named save file.
func (s *Store) Load(name string) (engine.State, error) {
	f, err := os.Open(s.SavePath(name))
	if os.IsNotExist(err) {
		return engine.State{}, fmt.Errorf("%w: %s", ErrSaveNotFound, Slug(name))
	}
	if err != nil {
		return engine.State{}, fmt.Errorf("reading save %s: %w", Slug(name), err)
	}
	defer f.Close()

	st, err := codec.Decode(f)
	if err != nil {
		return engine.State{}, fmt.Errorf("parsing save %s: %w", Slug(name), err)
	}
	return st, nil
}

// LoadInto restores the named save into e. On error e is unchanged.
func (s *Store) LoadInto(name string, e *engine.Engine) error {
	st, err := s.Load(name)
	if err != nil {
		return err
	}
	e.Restore(st)
	return nil
}

// List returns the saves on disk, most recently modified first.
func (s *Store) List() ([]SaveInfo, error) {
	entries, err := os.ReadDir(s.SavesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading saves directory: %w", err)
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveExt) || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // removed while listing
		}
		saves = append(saves, SaveInfo{
			Name:     strings.TrimSuffix(entry.Name(), saveExt),
			Path:     filepath.Join(s.SavesDir(), entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(saves, func(i, j int) bool {
		if saves[i].Modified.Equal(saves[j].Modified) {
			return saves[i].Name < saves[j].Name
		}
		return saves[i].Modified.After(saves[j].Modified)
	})
	return saves, nil
}

// Delete removes the named save.
func (s *Store) Delete(name string) error {
	path := s.SavePath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, Slug(name))
	}
	return os.Remove(path)
}
