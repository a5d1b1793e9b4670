package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDirEnv overrides the data directory when set.
const DataDirEnv = "QUEST_DIR"

// ResolveDataDir picks the data directory: an explicit flag value wins,
// then $QUEST_DIR, then the platform default.
func ResolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return DefaultDataDir()
}

// DefaultDataDir returns where saves live when nothing else is configured.
//
//   - macOS:   ~/Library/Application Support/quest
//   - Linux:   $XDG_DATA_HOME/quest, else ~/.local/share/quest
//   - Windows: %LOCALAPPDATA%\quest, else %APPDATA%\quest
func DefaultDataDir() string {
	return dataDirFor(runtime.GOOS, os.Getenv)
}

func dataDirFor(goos string, getenv func(string) string) string {
	home, _ := os.UserHomeDir()

	var base []string
	switch goos {
	case "darwin":
		base = []string{home, "Library", "Application Support"}
	case "windows":
		base = []string{firstNonEmpty(getenv("LOCALAPPDATA"), getenv("APPDATA"), home)}
	default:
		base = []string{firstNonEmpty(getenv("XDG_DATA_HOME"), filepath.Join(home, ".local", "share"))}
	}
	return filepath.Join(append(base, "quest")...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
