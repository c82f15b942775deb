package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/time-checker/internal/apperr"
	"github.com/Tiliavir/time-checker/internal/model"
	"github.com/Tiliavir/time-checker/internal/timecalc"
)

// Store persists the whole log as one JSON document at a fixed path.
// It holds no business rules and caches nothing between calls.
type Store struct {
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a Store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the log. A missing or blank file yields an empty log.
func (s *Store) Load() (model.Log, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Debug("data file not found, starting empty", "path", s.path)
		return model.Log{}, nil
	}
	if err != nil {
		return nil, apperr.DataLoad(s.path, fmt.Errorf("reading file: %w", err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Log{}, nil
	}

	var log model.Log
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, apperr.DataLoad(s.path, fmt.Errorf("corrupt JSON: %w", err))
	}
	if log == nil {
		log = model.Log{}
	}
	for i, e := range log {
		if err := validateEntry(e); err != nil {
			return nil, apperr.DataLoad(s.path, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	s.logger.Debug("loaded log", "path", s.path, "entries", len(log))
	return log, nil
}

// validateEntry rejects records that decoded without a task or a start.
func validateEntry(e model.TimeEntry) error {
	if e.Task == "" {
		return errors.New("missing task")
	}
	if e.Start.IsZero() {
		return errors.New("missing start")
	}
	return nil
}

// Save replaces the stored log. The document is fully encoded before any
// write, and lands via temp file plus rename so a failed save leaves the
// previous file intact.
func (s *Store) Save(log model.Log) error {
	if log == nil {
		log = model.Log{}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return apperr.DataSave(s.path, fmt.Errorf("marshalling JSON: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperr.DataSave(s.path, fmt.Errorf("creating directories: %w", err))
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return apperr.DataSave(s.path, fmt.Errorf("writing temp file: %w", err))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return apperr.DataSave(s.path, fmt.Errorf("renaming temp file: %w", err))
	}
	s.logger.Debug("saved log", "path", s.path, "entries", len(log))
	return nil
}

// CurrentOpenEntry returns the most recently started open entry, or nil.
func (s *Store) CurrentOpenEntry() (*model.TimeEntry, error) {
	log, err := s.Load()
	if err != nil {
		return nil, err
	}
	i := log.LastOpenIndex()
	if i < 0 {
		return nil, nil
	}
	entry := log[i]
	return &entry, nil
}

// EntriesForDay returns the entries whose start falls on day's calendar
// date, compared in day's location.
func (s *Store) EntriesForDay(day time.Time) (model.Log, error) {
	log, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := model.Log{}
	for _, e := range log {
		if timecalc.SameDay(e.Start.In(day.Location()), day) {
			out = append(out, e)
		}
	}
	return out, nil
}
