package config

const (
	defaultWhisperModel          = "stt"
	defaultWhisperTimeoutSeconds = 600
	defaultLLMModel              = "llm"
	defaultLLMTemperature        = 0.3
	defaultLLMTopP               = 0.9
	defaultLLMTimeoutSeconds     = 120
	defaultOutputDir             = "."
	defaultYtDlpBinary           = "yt-dlp"
	defaultFFmpegBinary          = "ffmpeg"
	defaultLogFormat             = "auto"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Whisper: Whisper{
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeoutSeconds,
		},
		LLM: LLM{
			Model:          defaultLLMModel,
			Temperature:    defaultLLMTemperature,
			TopP:           defaultLLMTopP,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Tools: Tools{
			YtDlp:  defaultYtDlpBinary,
			FFmpeg: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
