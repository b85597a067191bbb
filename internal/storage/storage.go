package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// BaseDir returns the export directory (~/.ttp/exports).
func BaseDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttp", "exports"), nil
}

// ExportPath returns base/<trip>/<trip>-<YYYY-MM-DD>.<ext>.
func ExportPath(base, tripID, ext string, t time.Time) string {
	name := safeName(tripID)
	return filepath.Join(base, name, fmt.Sprintf("%s-%s.%s", name, t.Format("2006-01-02"), ext))
}

// safeName keeps trip ids usable as file names.
func safeName(id string) string {
	id = strings.TrimSpace(id)
	if strings.Trim(id, ".") == "" {
		return "trip"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, id)
}

// WriteFileAtomic writes data to path via a temp file and rename, creating
// parent directories as needed. ~ in path is expanded.
func WriteFileAtomic(path string, data []byte) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("storage error expanding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// SaveJSON atomically writes v as indented JSON.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return WriteFileAtomic(path, append(data, '\n'))
}
