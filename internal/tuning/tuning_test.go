package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMissingFileYieldsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if got != Default() {
		t.Fatalf("got %+v", got)
	}
}

func TestPartialFileOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := "ticks_per_second: 10\nadmin_key: hunter2\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TicksPerSecond != 10 {
		t.Fatalf("ticks_per_second: %d", got.TicksPerSecond)
	}
	if got.AdminKey != "hunter2" {
		t.Fatalf("admin_key: %q", got.AdminKey)
	}
	if got.CatchUpLimit != Default().CatchUpLimit {
		t.Fatalf("catchup_limit should default, got %d", got.CatchUpLimit)
	}
	if got.DBPath != Default().DBPath {
		t.Fatalf("db_path should default, got %q", got.DBPath)
	}
}

func TestMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("ticks_per_second: [not a number"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
