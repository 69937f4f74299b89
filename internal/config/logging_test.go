package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogFileCreatesTimestampedFile(t *testing.T) {
	dir := t.TempDir()

	f, err := SetupLogFile(dir, 5)
	if err != nil {
		t.Fatalf("SetupLogFile: %v", err)
	}
	defer f.Close()

	base := filepath.Base(f.Name())
	if !strings.HasPrefix(base, "docvault-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("log file name %q does not match docvault-*.log", base)
	}
}

func TestPruneLogsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"docvault-2026-01-01T00-00-00.log",
		"docvault-2026-01-02T00-00-00.log",
		"docvault-2026-01-03T00-00-00.log",
		"docvault-2026-01-04T00-00-00.log",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	// A file outside the pattern must survive pruning.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := pruneLogs(dir, 2); err != nil {
		t.Fatalf("pruneLogs: %v", err)
	}

	remaining, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 log files after pruning, got %d: %v", len(remaining), remaining)
	}
	for _, kept := range remaining {
		base := filepath.Base(kept)
		if base != names[2] && base != names[3] {
			t.Errorf("pruning kept %q instead of the newest files", base)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "other.txt")); err != nil {
		t.Errorf("non-log file removed by pruning: %v", err)
	}
}

func TestPruneLogsUnderLimitIsNoop(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "docvault-2026-01-01T00-00-00.log")
	if err := os.WriteFile(name, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := pruneLogs(dir, 3); err != nil {
		t.Fatalf("pruneLogs: %v", err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("file removed while under the limit: %v", err)
	}
}
