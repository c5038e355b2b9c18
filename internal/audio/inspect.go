package audio

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mewkiz/flac"

	"flacsmith/internal/services"
)

// Properties holds the stream parameters of one lossless source file.
type Properties struct {
	SampleRate    int
	BitsPerSample int
	Channels      int
}

// FileProperties pairs stream parameters with the file they came from.
type FileProperties struct {
	Path string
	Properties
}

// InspectFile reads the stream info of a single FLAC file.
func InspectFile(path string) (Properties, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return Properties{}, services.Wrap(services.ErrIO, "inspect", "parse flac", path, err)
	}
	defer stream.Close()

	info := stream.Info
	return Properties{
		SampleRate:    int(info.SampleRate),
		BitsPerSample: int(info.BitsPerSample),
		Channels:      int(info.NChannels),
	}, nil
}

// InspectDir walks root recursively and inspects every FLAC file found,
// skipping hidden files. The walk is read-only.
func InspectDir(root string) ([]FileProperties, error) {
	files, err := FindFiles(root, ".flac")
	if err != nil {
		return nil, err
	}
	results := make([]FileProperties, 0, len(files))
	for _, path := range files {
		props, err := InspectFile(path)
		if err != nil {
			return nil, err
		}
		results = append(results, FileProperties{Path: path, Properties: props})
	}
	return results, nil
}

// FindFiles returns the absolute paths of all files under root whose lowered
// extension is one of exts. Hidden files are ignored.
func FindFiles(root string, exts ...string) ([]string, error) {
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		matches = append(matches, abs)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "inspect", "walk source tree", root, err)
	}
	return matches, nil
}
