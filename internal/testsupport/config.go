package testsupport

import (
	"path/filepath"
	"testing"

	"flacsmith/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.TorrentDir = filepath.Join(base, "torrents")
	cfg.Paths.LockFile = filepath.Join(base, "transcode.lock")
	cfg.Tracker.AnnounceBase = "https://home.tracker.example/"
	cfg.Tracker.Passkey = "testpasskey"
	return &cfg
}
