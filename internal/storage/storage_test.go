package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/storage"
)

func TestExportPath(t *testing.T) {
	day := time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		trip string
		ext  string
		want string
	}{
		{"t1", "ics", filepath.Join("base", "t1", "t1-2026-04-12.ics")},
		{"a/b", "json", filepath.Join("base", "a_b", "a_b-2026-04-12.json")},
		{"  ", "ics", filepath.Join("base", "trip", "trip-2026-04-12.ics")},
		{"..", "ics", filepath.Join("base", "trip", "trip-2026-04-12.ics")},
		{".", "ics", filepath.Join("base", "trip", "trip-2026-04-12.ics")},
		{"../etc", "json", filepath.Join("base", ".._etc", ".._etc-2026-04-12.json")},
	}
	for _, tt := range tests {
		if got := storage.ExportPath("base", tt.trip, tt.ext, day); got != tt.want {
			t.Errorf("ExportPath(%q) = %q, want %q", tt.trip, got, tt.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.ics")

	if err := storage.WriteFileAtomic(path, []byte("BEGIN:VCALENDAR\n")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := storage.WriteFileAtomic(path, []byte("second\n")); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second\n" {
		t.Errorf("content = %q, want %q", data, "second\n")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	in := map[string]any{"id": "t1", "days": []string{"2026-04-12"}}

	if err := storage.SaveJSON(path, in); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("saved file is not JSON: %v", err)
	}
	if out["id"] != "t1" {
		t.Errorf("id = %v, want t1", out["id"])
	}
}

func TestSaveJSONUnsupportedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := storage.SaveJSON(path, map[string]any{"ch": make(chan int)}); err == nil {
		t.Fatal("expected marshal error, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file written despite error: %v", err)
	}
}
