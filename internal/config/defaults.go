package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultOutputDir     = "~/renamed"
	defaultLogDir        = "~/.local/share/submatch/logs"
	defaultMinSimilarity = 0.1
	defaultWorkers       = 4
	defaultWhisperModel  = "base"
	defaultLanguage      = "en"
	defaultFFmpegBinary  = "ffmpeg"
	defaultWhisperBinary = "whisper"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultVideoExtensions() []string {
	return []string{"mkv", "mp4", "mpeg4"}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "submatch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/submatch"
	}
	return filepath.Join(home, ".cache", "submatch")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			CacheDir:  defaultCacheDir(),
		},
		Matching: Matching{
			MinSimilarity:   defaultMinSimilarity,
			VideoExtensions: defaultVideoExtensions(),
			Workers:         defaultWorkers,
		},
		Transcription: Transcription{
			Model:         defaultWhisperModel,
			Language:      defaultLanguage,
			FFmpegBinary:  defaultFFmpegBinary,
			WhisperBinary: defaultWhisperBinary,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
