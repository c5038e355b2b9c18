package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flacsmith/internal/services"
	"flacsmith/internal/testsupport"
	"flacsmith/internal/transcode"
)

type fakeTranscoder struct {
	jobs    []transcode.Job
	failAt  int // 1-based call index that fails; 0 never fails
	failErr error
}

func (f *fakeTranscoder) Transcode(_ context.Context, job transcode.Job) (string, error) {
	f.jobs = append(f.jobs, job)
	if f.failAt > 0 && len(f.jobs) == f.failAt {
		return "", f.failErr
	}
	if err := os.MkdirAll(job.DestDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(job.DestDir, "out.mp3")
	if err := os.WriteFile(dst, []byte("x"), 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

func sourceRelease(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src")
	testsupport.WriteFLAC(t, filepath.Join(src, "01 - One.flac"), testsupport.FLACSpec{})
	testsupport.WriteFLAC(t, filepath.Join(src, "CD2", "01 - Two.flac"), testsupport.FLACSpec{})
	for _, name := range []string{"folder.jpg", "notes.txt", filepath.Join("CD2", "rip.log"), "playlist.m3u"} {
		path := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return src
}

func testMeta() Metadata {
	return Metadata{
		Artists: []string{"Test Artist"},
		Title:   "Test Album",
		Year:    2001,
		Media:   "CD",
	}
}

func TestPackageBuildsReleaseTree(t *testing.T) {
	t.Parallel()
	src := sourceRelease(t)
	destRoot := t.TempDir()

	fake := &fakeTranscoder{}
	packager := NewPackager(fake, nil)

	dest, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  destRoot,
		Format:    mp3v0(t),
		Meta:      testMeta(),
	})
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if filepath.Base(dest) != "Test Artist - 2001 - Test Album {CD} [MP3 V0]" {
		t.Fatalf("unexpected destination name %q", dest)
	}
	if len(fake.jobs) != 2 {
		t.Fatalf("expected 2 transcode jobs, got %d", len(fake.jobs))
	}

	var sawSubdir bool
	for _, job := range fake.jobs {
		if job.DestDir == filepath.Join(dest, "CD2") {
			sawSubdir = true
		}
	}
	if !sawSubdir {
		t.Fatalf("subdirectory layout not mirrored: %+v", fake.jobs)
	}

	for _, rel := range []string{"folder.jpg", "notes.txt", filepath.Join("CD2", "rip.log")} {
		if _, err := os.Stat(filepath.Join(dest, rel)); err != nil {
			t.Fatalf("ancillary file %s not copied: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dest, "playlist.m3u")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("playlist.m3u should not be copied")
	}
}

func TestPackageLosslessNoResampleIsNoOp(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "src")
	testsupport.WriteFLAC(t, filepath.Join(src, "track.flac"), testsupport.FLACSpec{SampleRate: 44100, BitsPerSample: 16})
	destRoot := t.TempDir()

	fake := &fakeTranscoder{}
	packager := NewPackager(fake, nil)

	dest, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  destRoot,
		Format:    losslessFormat(t),
		Meta:      testMeta(),
	})
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if dest != src {
		t.Fatalf("expected source dir back, got %q", dest)
	}
	if len(fake.jobs) != 0 {
		t.Fatalf("no transcodes expected, got %d", len(fake.jobs))
	}
	entries, err := os.ReadDir(destRoot)
	if err != nil {
		t.Fatalf("read dest root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("destination root should stay empty, got %v", entries)
	}
}

func TestPackageLosslessWithResampleTranscodes(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "src")
	testsupport.WriteFLAC(t, filepath.Join(src, "track.flac"), testsupport.FLACSpec{SampleRate: 96000, BitsPerSample: 24})

	fake := &fakeTranscoder{}
	packager := NewPackager(fake, nil)

	dest, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  t.TempDir(),
		Format:    losslessFormat(t),
		Meta:      testMeta(),
	})
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if dest == src {
		t.Fatal("high-res lossless source must be repackaged, not returned as-is")
	}
	if len(fake.jobs) != 1 {
		t.Fatalf("expected 1 transcode job, got %d", len(fake.jobs))
	}
}

func TestPackageExistingDestinationShortCircuits(t *testing.T) {
	t.Parallel()
	src := sourceRelease(t)
	destRoot := t.TempDir()
	existing := filepath.Join(destRoot, "Test Artist - 2001 - Test Album {CD} [MP3 V0]")
	if err := os.MkdirAll(existing, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sentinel := filepath.Join(existing, "keep.txt")
	if err := os.WriteFile(sentinel, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write sentinel: %v", err)
	}

	fake := &fakeTranscoder{}
	packager := NewPackager(fake, nil)

	dest, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  destRoot,
		Format:    mp3v0(t),
		Meta:      testMeta(),
	})
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if dest != existing {
		t.Fatalf("expected existing destination back, got %q", dest)
	}
	if len(fake.jobs) != 0 {
		t.Fatalf("existing destination must not be reprocessed, got %d jobs", len(fake.jobs))
	}
	if _, err := os.Stat(sentinel); err != nil {
		t.Fatalf("existing content must be untouched: %v", err)
	}
}

func TestPackageRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	src := sourceRelease(t)
	destRoot := t.TempDir()

	wantErr := services.Wrap(services.ErrTranscode, "pipeline", "lame", "boom", nil)
	fake := &fakeTranscoder{failAt: 2, failErr: wantErr}
	packager := NewPackager(fake, nil)

	_, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  destRoot,
		Format:    mp3v0(t),
		Meta:      testMeta(),
	})
	if !errors.Is(err, services.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}

	entries, err := os.ReadDir(destRoot)
	if err != nil {
		t.Fatalf("read dest root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("destination tree must be rolled back, found %v", entries)
	}
}

func TestPackageEmptySource(t *testing.T) {
	t.Parallel()
	src := t.TempDir()

	packager := NewPackager(&fakeTranscoder{}, nil)
	_, err := packager.Package(context.Background(), Job{
		SourceDir: src,
		DestRoot:  t.TempDir(),
		Format:    mp3v0(t),
		Meta:      testMeta(),
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
