package deps

import (
	"os"
	"path/filepath"
	"testing"

	"flacsmith/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Empty", Command: "  "}})
	if results[0].Available {
		t.Fatal("unconfigured command must not be available")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestRequirementsCoverEveryTool(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	reqs := Requirements(cfg)

	want := map[string]bool{"flac": false, "lame": false, "sox": false, "metaflac": false, "mktorrent": false}
	for _, req := range reqs {
		if _, ok := want[req.Name]; !ok {
			t.Fatalf("unexpected requirement %q", req.Name)
		}
		want[req.Name] = true
		if req.Command == "" {
			t.Fatalf("requirement %q has no command", req.Name)
		}
		if req.Optional {
			t.Fatalf("requirement %q must be mandatory", req.Name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("requirement %q missing", name)
		}
	}
}
