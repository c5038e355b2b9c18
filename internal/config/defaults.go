package config

const (
	defaultOutputDir  = "~/.local/share/flacsmith/output"
	defaultTorrentDir = "~/.local/share/flacsmith/torrents"
	defaultLockFile   = "~/.local/share/flacsmith/transcode.lock"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			TorrentDir: defaultTorrentDir,
			LockFile:   defaultLockFile,
		},
		Transcode: Transcode{
			Formats: []string{"MP3 320", "MP3 V0"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
