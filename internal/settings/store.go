// Package settings persists the window geometry to a per-user JSON file.
// Reads never fail: anything unusable falls back to DefaultGeometry. Writes
// go through a temporary file and a rename so a failed save leaves the
// previous file intact.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/TheGojiOG/pwhashtool/internal/config"
	"github.com/natefinch/atomic"
)

// maxFileSize bounds how much of the settings file is read.
const maxFileSize = 1 << 20

// Status tells how Load arrived at its result.
type Status int

const (
	// StatusLoaded means the file was read and used.
	StatusLoaded Status = iota
	// StatusMissing means there was no file and defaults were used.
	StatusMissing
	// StatusCorrupt means the file existed but could not be used.
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Store reads and writes the settings file.
type Store struct {
	dir       string
	path      string
	logger    *slog.Logger
	writeFile func(filename string, r io.Reader) error
}

// NewStore creates a store rooted at paths.Dir writing paths.SettingsFile.
func NewStore(paths config.Paths, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		dir:       paths.Dir,
		path:      paths.SettingsFile,
		logger:    logger.With("component", "settings"),
		writeFile: atomic.WriteFile,
	}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored geometry or the default one.
func (s *Store) Load() Geometry {
	g, _ := s.LoadStatus()
	return g
}

// LoadStatus is Load plus the reason defaults were used, if they were.
func (s *Store) LoadStatus() (Geometry, Status) {
	g, err := s.read()
	switch {
	case err == nil:
		return g, StatusLoaded
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("settings file absent, using defaults", "path", s.path)
		return DefaultGeometry(), StatusMissing
	default:
		s.logger.Debug("settings file unusable, using defaults", "path", s.path, "error", err)
		return DefaultGeometry(), StatusCorrupt
	}
}

func (s *Store) read() (Geometry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return Geometry{}, err
	}
	defer f.Close()

	var rec fileRecord
	data, err := io.ReadAll(io.LimitReader(f, maxFileSize))
	if err != nil {
		return Geometry{}, err
	}
	// Unmarshal rejects anything after the first value.
	if err := json.Unmarshal(data, &rec); err != nil {
		return Geometry{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return fromRecord(rec)
}

// Save writes g and reports whether it succeeded. Failures are logged, never
// raised.
func (s *Store) Save(g Geometry) bool {
	if err := s.SaveErr(g); err != nil {
		s.logger.Warn("failed to save settings", "path", s.path, "error", err)
		return false
	}
	return true
}

// SaveErr writes g and returns the failure, if any.
func (s *Store) SaveErr(g Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toRecord(g), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.writeFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	s.logger.Debug("settings saved", "path", s.path, "geometry", g.String())
	return nil
}

// Reset removes the settings file so the next Load returns defaults.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove settings: %w", err)
	}
	return nil
}
