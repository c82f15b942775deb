package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/time-checker/internal/apperr"
	"github.com/Tiliavir/time-checker/internal/model"
	"github.com/Tiliavir/time-checker/internal/storage"
)

func newStore(t *testing.T) (*storage.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	return storage.New(path), path
}

func ptr[T any](v T) *T { return &v }

func TestLoadNotExist(t *testing.T) {
	s, _ := newStore(t)
	log, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("Load entries = %d, want 0", len(log))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	for _, content := range []string{"", "  \n\t", "null"} {
		s, path := newStore(t)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		log, err := s.Load()
		if err != nil {
			t.Fatalf("Load(%q): %v", content, err)
		}
		if log == nil || len(log) != 0 {
			t.Errorf("Load(%q) = %v, want empty non-nil log", content, log)
		}
	}
}

func TestLoadCorrupt(t *testing.T) {
	s, path := newStore(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load()
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
	if !errors.Is(err, apperr.ErrDataLoad) {
		t.Errorf("error = %v, want DataLoad kind", err)
	}

	// The corrupt file stays where it is.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("corrupt file should be left in place: %v", err)
	}
}

func TestLoadMissingRequiredShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad start", `[{"task":"A","start":"not a time"}]`, "corrupt JSON"},
		{"empty object", `[{}]`, "entry 0: missing task"},
		{"note only", `[{"note":"x"}]`, "entry 0: missing task"},
		{"no start", `[{"task":"A"}]`, "entry 0: missing start"},
		{"no task", `[{"start":"2026-02-27T09:00:00Z"}]`, "entry 0: missing task"},
		{"empty task", `[{"task":"","start":"2026-02-27T09:00:00Z"}]`, "entry 0: missing task"},
		{"second entry", `[{"task":"A","start":"2026-02-27T09:00:00Z","end":"2026-02-27T10:00:00Z"},{"task":"B"}]`, "entry 1: missing start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := newStore(t)
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := s.Load()
			if !errors.Is(err, apperr.ErrDataLoad) {
				t.Fatalf("Load error = %v, want DataLoad kind", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %q, want it to mention %q", err, tt.want)
			}
			if open, err := s.CurrentOpenEntry(); !errors.Is(err, apperr.ErrDataLoad) {
				t.Errorf("CurrentOpenEntry = %v, %v; want DataLoad kind", open, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, path := newStore(t)
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	log := model.Log{
		{Task: "ECM", Start: start, End: &end, Note: ptr("review")},
		{Task: "Mail", Start: end},
	}
	if err := s.Save(log); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not survive a successful save")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load entries = %d, want 2", len(loaded))
	}
	if loaded[0].Task != "ECM" || !loaded[0].Start.Equal(start) {
		t.Errorf("entry 0 = %+v", loaded[0])
	}
	if loaded[0].End == nil || !loaded[0].End.Equal(end) {
		t.Errorf("entry 0 end = %v, want %v", loaded[0].End, end)
	}
	if loaded[0].Note == nil || *loaded[0].Note != "review" {
		t.Errorf("entry 0 note = %v, want %q", loaded[0].Note, "review")
	}
	if loaded[1].End != nil || loaded[1].Note != nil {
		t.Errorf("entry 1 = %+v, want open entry without note", loaded[1])
	}
}

func TestSaveOmitsAbsentFields(t *testing.T) {
	s, path := newStore(t)
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	if err := s.Save(model.Log{{Task: "A", Start: start}}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"end"`, `"note"`, "null"} {
		if strings.Contains(string(data), field) {
			t.Errorf("saved document contains %s:\n%s", field, data)
		}
	}
}

func TestSaveFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the parent directory should be makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := storage.New(filepath.Join(blocker, "data.json"))
	err := s.Save(model.Log{{Task: "A", Start: time.Now()}})
	if !errors.Is(err, apperr.ErrDataSave) {
		t.Fatalf("Save error = %v, want DataSave kind", err)
	}
	data, err := os.ReadFile(blocker)
	if err != nil || string(data) != "x" {
		t.Errorf("blocker file changed: %q, %v", data, err)
	}
}

func TestCurrentOpenEntry(t *testing.T) {
	s, _ := newStore(t)

	active, err := s.CurrentOpenEntry()
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Fatal("expected no active entry on empty storage")
	}

	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	if err := s.Save(model.Log{
		{Task: "stale", Start: start},
		{Task: "closed", Start: start, End: &end},
		{Task: "latest", Start: end},
	}); err != nil {
		t.Fatal(err)
	}

	active, err = s.CurrentOpenEntry()
	if err != nil {
		t.Fatal(err)
	}
	if active == nil {
		t.Fatal("expected active entry, got nil")
	}
	if active.Task != "latest" {
		t.Errorf("active task = %q, want %q", active.Task, "latest")
	}
}

func TestEntriesForDay(t *testing.T) {
	s, _ := newStore(t)
	loc := time.FixedZone("CET", 3600)
	today := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	// 23:30 UTC on the 26th is 00:30 on the 27th in loc.
	lateUTC := time.Date(2026, 2, 26, 23, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 2, 26, 22, 0, 0, 0, loc)
	tomorrow := time.Date(2026, 2, 28, 0, 0, 0, 0, loc)
	crossEnd := tomorrow.Add(2 * time.Hour)

	if err := s.Save(model.Log{
		{Task: "yesterday", Start: yesterday, End: &crossEnd},
		{Task: "early", Start: lateUTC},
		{Task: "noon", Start: today},
		{Task: "tomorrow", Start: tomorrow},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.EntriesForDay(today)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("EntriesForDay = %d entries, want 2: %+v", len(got), got)
	}
	if got[0].Task != "early" || got[1].Task != "noon" {
		t.Errorf("EntriesForDay tasks = %q, %q; want early, noon", got[0].Task, got[1].Task)
	}
}
