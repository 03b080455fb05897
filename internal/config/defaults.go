package config

const (
	defaultTranscriptsDir = "~/.local/share/scribe/transcriptions"
	defaultLogDir         = "~/.local/share/scribe/logs"
	defaultModelDir       = "~/.local/share/scribe/models"
	defaultWhisperBinary  = "whisper-cli"
	defaultWhisperModel   = "base"
	defaultLanguage       = "auto"
	defaultTask           = "transcribe"
	defaultYtDlpBinary    = "yt-dlp"
	defaultAudioFormat    = "mp3"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TranscriptsDir: defaultTranscriptsDir,
			LogDir:         defaultLogDir,
		},
		Whisper: Whisper{
			Binary:   defaultWhisperBinary,
			ModelDir: defaultModelDir,
			Model:    defaultWhisperModel,
			Language: defaultLanguage,
			Task:     defaultTask,
		},
		YtDlp: YtDlp{
			Binary:      defaultYtDlpBinary,
			AudioFormat: defaultAudioFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
