package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "ttm.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCollection_RoundTrip(t *testing.T) {
	database := openTestDB(t)

	in := []string{"a", "b", "c"}
	if err := database.SaveCollection("things", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out []string
	if err := database.LoadCollection("things", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 3 || out[0] != "a" || out[2] != "c" {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestCollection_Overwrite(t *testing.T) {
	database := openTestDB(t)

	if err := database.SaveCollection("things", []int{1, 2, 3}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := database.SaveCollection("things", []int{9}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	var out []int
	if err := database.LoadCollection("things", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0] != 9 {
		t.Fatalf("expected [9], got %v", out)
	}
}

func TestLoadCollection_MissingKeyIsNotAnError(t *testing.T) {
	database := openTestDB(t)

	out := []string{"sentinel"}
	if err := database.LoadCollection("nope", &out); err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if len(out) != 1 || out[0] != "sentinel" {
		t.Fatalf("dest should be untouched, got %v", out)
	}
}

func TestLoadCollection_CorruptJSON(t *testing.T) {
	database := openTestDB(t)

	if _, err := database.Exec(
		`INSERT INTO collections (key, value) VALUES ('broken', '{not json')`,
	); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	var out []string
	err := database.LoadCollection("broken", &out)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode broken") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSettings(t *testing.T) {
	database := openTestDB(t)

	got, err := database.GetSetting("currentUserId")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != "" {
		t.Fatalf("missing setting should read empty, got %q", got)
	}

	if err := database.SetSetting("currentUserId", "u1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := database.SetSetting("currentUserId", "u2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err = database.GetSetting("currentUserId")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "u2" {
		t.Fatalf("expected u2, got %q", got)
	}
}
