package deps

import "flacsmith/internal/config"

// Requirements lists the external binaries the engine needs, resolved from
// configuration. All of them are mandatory for a full transcode run.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "flac", Command: cfg.FlacBinary(), Description: "FLAC decoding and lossless encoding"},
		{Name: "lame", Command: cfg.LameBinary(), Description: "MP3 encoding"},
		{Name: "sox", Command: cfg.SoxBinary(), Description: "Sample rate conversion with dithering"},
		{Name: "metaflac", Command: cfg.MetaflacBinary(), Description: "FLAC tag rewriting"},
		{Name: "mktorrent", Command: cfg.MktorrentBinary(), Description: "Torrent creation"},
	}
}
