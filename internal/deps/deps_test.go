package deps

import (
	"os"
	"path/filepath"
	"testing"

	"lyrebird/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := CheckBinaries(Requirements(cfg))
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Available {
			t.Errorf("%s unavailable: %s", status.Name, status.Detail)
		}
	}
}

func TestCheckBinariesMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-7f3a"},
		{Name: "Unset", Command: "  "},
	})
	if statuses[0].Available {
		t.Error("missing binary reported available")
	}
	if statuses[1].Available || statuses[1].Detail != "command not configured" {
		t.Errorf("blank command status = %+v", statuses[1])
	}
}

func TestCheckDir(t *testing.T) {
	base := t.TempDir()

	existing := filepath.Join(base, "existing")
	if err := os.MkdirAll(existing, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if result := CheckDir("existing", existing); !result.Passed {
		t.Errorf("existing dir failed: %s", result.Detail)
	}

	// Missing directories are created on the spot.
	missing := filepath.Join(base, "missing", "nested")
	if result := CheckDir("missing", missing); !result.Passed {
		t.Errorf("missing dir not created: %s", result.Detail)
	}
	if _, err := os.Stat(missing); err != nil {
		t.Errorf("expected directory created: %v", err)
	}

	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckDir("file", file); result.Passed {
		t.Error("regular file passed directory check")
	}

	if result := CheckDir("unset", ""); result.Passed {
		t.Error("blank path passed directory check")
	}
}
