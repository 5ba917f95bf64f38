package config

const (
	defaultSourceDir      = "~/.local/share/lyrebird/source"
	defaultOutputDir      = "./final_mp3s"
	defaultLogDir         = "~/.local/share/lyrebird/logs"
	defaultLanguage       = "en"
	defaultSubtitleFormat = "srt"
	defaultAudioBitrate   = "192k"
	defaultSampleRate     = 44100
	defaultListRetries    = 3
	defaultListRetryDelay = 5
	defaultNtfyTimeout    = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Download: Download{
			Language:       defaultLanguage,
			SubtitleFormat: defaultSubtitleFormat,
			AudioBitrate:   defaultAudioBitrate,
			ListRetries:    defaultListRetries,
			ListRetryDelay: defaultListRetryDelay,
		},
		Audio: Audio{
			SampleRate: defaultSampleRate,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
