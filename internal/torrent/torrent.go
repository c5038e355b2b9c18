// Package torrent creates private torrent files for packaged releases and
// normalizes the path metadata they carry to NFC, so that differently
// composed Unicode file names hash identically across platforms.
package torrent

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zeebo/bencode"
	"golang.org/x/text/unicode/norm"

	"flacsmith/internal/logging"
	"flacsmith/internal/services"
)

// Creator builds torrent files by shelling out to mktorrent.
type Creator struct {
	mktorrent string
	logger    *slog.Logger
}

// NewCreator constructs a Creator using the given mktorrent binary. A nil
// logger disables logging.
func NewCreator(mktorrentBinary string, logger *slog.Logger) *Creator {
	return &Creator{
		mktorrent: mktorrentBinary,
		logger:    logging.NewComponentLogger(logger, "torrent"),
	}
}

// Create builds a private torrent for inputDir under outputDir and returns
// its path. A non-empty source string is embedded as the tracker source flag.
// The resulting file has its path metadata rewritten to NFC before it is
// returned.
func (c *Creator) Create(ctx context.Context, inputDir, outputDir, announceURL, source string) (string, error) {
	out := filepath.Join(outputDir, filepath.Base(filepath.Clean(inputDir))+".torrent")
	if _, err := os.Stat(out); err == nil {
		return "", services.Wrap(services.ErrValidation, "torrent", "create", out+" already exists", nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", services.Wrap(services.ErrIO, "torrent", "stat output", out, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrIO, "torrent", "create output directory", outputDir, err)
	}

	args := []string{"-p"}
	if source != "" {
		args = append(args, "-s", source)
	}
	args = append(args, "-a", announceURL, "-o", out, inputDir)

	cmd := exec.CommandContext(ctx, c.mktorrent, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", services.Wrap(services.ErrExternalTool, "torrent", "mktorrent", detail, err)
	}
	logging.WithContext(ctx, c.logger).Info(
		"created torrent",
		logging.String("input", inputDir),
		logging.String("torrent", out),
	)

	if err := NormalizeFile(out); err != nil {
		return "", err
	}
	return out, nil
}

// NormalizeFile rewrites the info.name and info.files[].path entries of a
// torrent file to NFC in place. All other fields, the piece hashes included,
// are carried through byte for byte.
func NormalizeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "torrent", "read torrent", path, err)
	}

	var root map[string]bencode.RawMessage
	if err := bencode.DecodeBytes(data, &root); err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "decode torrent", path, err)
	}
	rawInfo, ok := root["info"]
	if !ok {
		return services.Wrap(services.ErrValidation, "torrent", "decode torrent", path+" has no info dictionary", nil)
	}
	var info map[string]bencode.RawMessage
	if err := bencode.DecodeBytes(rawInfo, &info); err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "decode info dictionary", path, err)
	}

	if err := normalizeField(info, "name", path); err != nil {
		return err
	}
	if rawFiles, ok := info["files"]; ok {
		var files []map[string]bencode.RawMessage
		if err := bencode.DecodeBytes(rawFiles, &files); err != nil {
			return services.Wrap(services.ErrValidation, "torrent", "decode file list", path, err)
		}
		for _, file := range files {
			if err := normalizePath(file, path); err != nil {
				return err
			}
		}
		encoded, err := bencode.EncodeBytes(files)
		if err != nil {
			return services.Wrap(services.ErrValidation, "torrent", "encode file list", path, err)
		}
		info["files"] = encoded
	}

	encodedInfo, err := bencode.EncodeBytes(info)
	if err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "encode info dictionary", path, err)
	}
	root["info"] = encodedInfo
	encoded, err := bencode.EncodeBytes(root)
	if err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "encode torrent", path, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "torrent", "write torrent", path, err)
	}
	return nil
}

// normalizeField rewrites a single string field of dict to NFC.
func normalizeField(dict map[string]bencode.RawMessage, key, torrentPath string) error {
	raw, ok := dict[key]
	if !ok {
		return nil
	}
	var value string
	if err := bencode.DecodeBytes(raw, &value); err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "decode "+key, torrentPath, err)
	}
	encoded, err := bencode.EncodeBytes(norm.NFC.String(value))
	if err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "encode "+key, torrentPath, err)
	}
	dict[key] = encoded
	return nil
}

// normalizePath rewrites every element of a file's path list to NFC.
func normalizePath(file map[string]bencode.RawMessage, torrentPath string) error {
	raw, ok := file["path"]
	if !ok {
		return nil
	}
	var elements []string
	if err := bencode.DecodeBytes(raw, &elements); err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "decode file path", torrentPath, err)
	}
	for i, element := range elements {
		elements[i] = norm.NFC.String(element)
	}
	encoded, err := bencode.EncodeBytes(elements)
	if err != nil {
		return services.Wrap(services.ErrValidation, "torrent", "encode file path", torrentPath, err)
	}
	file["path"] = encoded
	return nil
}
