package tracker

import (
	"log/slog"
	"sort"
	"time"

	"github.com/Tiliavir/time-checker/internal/apperr"
	"github.com/Tiliavir/time-checker/internal/model"
)

// Store is the persistence the Tracker depends on.
type Store interface {
	Load() (model.Log, error)
	Save(model.Log) error
	CurrentOpenEntry() (*model.TimeEntry, error)
	EntriesForDay(day time.Time) (model.Log, error)
}

// Tracker enforces the single-active-task rule on top of a Store. It keeps
// no state of its own: every call reloads the log and, when it mutates
// anything, writes the whole log back.
//
// There is no locking. Two processes running at once race on the data
// file and the last writer wins.
type Tracker struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker on top of store.
func New(store Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartTask closes the open entry, if any, and appends a new open entry
// for name. It returns the appended entry and the entry that was closed,
// which is nil when nothing was running.
func (t *Tracker) StartTask(name string, note *string) (started, closed *model.TimeEntry, err error) {
	log, err := t.store.Load()
	if err != nil {
		return nil, nil, err
	}
	now := t.now()

	if i := log.LastOpenIndex(); i >= 0 {
		end := now
		log[i].End = &end
		prev := log[i]
		closed = &prev
		t.logger.Info("auto-stopped running task", "task", prev.Task, "start", prev.Start)
	}

	entry := model.TimeEntry{
		Task:  name,
		Start: now,
		Note:  note,
	}
	log = append(log, entry)
	if err := t.store.Save(log); err != nil {
		return nil, nil, err
	}
	t.logger.Info("started task", "task", name)
	return &entry, closed, nil
}

// StopTask closes the open entry and returns it. With nothing running it
// fails with apperr.ErrNoActiveTask and writes nothing.
func (t *Tracker) StopTask() (*model.TimeEntry, error) {
	log, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	i := log.LastOpenIndex()
	if i < 0 {
		return nil, apperr.NoActiveTask()
	}

	end := t.now()
	log[i].End = &end
	if err := t.store.Save(log); err != nil {
		return nil, err
	}
	stopped := log[i]
	t.logger.Info("stopped task", "task", stopped.Task, "elapsed", stopped.Duration(end))
	return &stopped, nil
}

// CurrentEntry returns the running entry, or nil.
func (t *Tracker) CurrentEntry() (*model.TimeEntry, error) {
	return t.store.CurrentOpenEntry()
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Summary maps task names to the time spent on them.
type Summary map[string]time.Duration

// Tasks returns the task names in alphabetical order.
func (s Summary) Tasks() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total is the sum over all tasks.
func (s Summary) Total() time.Duration {
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total
}

// TodaySummary totals today's entries per task. An entry belongs to the
// day it started on; a running entry counts up to now. Entries that end
// before they start contribute nothing.
func (t *Tracker) TodaySummary() (Summary, error) {
	now := t.now()
	entries, err := t.store.EntriesForDay(now)
	if err != nil {
		return nil, err
	}

	summary := Summary{}
	for _, e := range entries {
		d := e.Duration(now)
		if d < 0 {
			t.logger.Debug("skipping entry with negative duration", "task", e.Task, "start", e.Start)
			continue
		}
		summary[e.Task] += d
	}
	return summary, nil
}
