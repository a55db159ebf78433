package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeWhisper()
	if err := c.normalizeLLM(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeWhisper() {
	if value, ok := os.LookupEnv("WHISPER_API_URL"); ok {
		c.Whisper.APIURL = value
	}
	if value, ok := os.LookupEnv("WHISPER_API_KEY"); ok {
		c.Whisper.APIKey = value
	}
	if value, ok := os.LookupEnv("WHISPER_MODEL_NAME"); ok {
		c.Whisper.Model = value
	}
	c.Whisper.APIURL = strings.TrimSpace(c.Whisper.APIURL)
	c.Whisper.APIKey = strings.TrimSpace(c.Whisper.APIKey)
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if c.Whisper.TimeoutSeconds <= 0 {
		c.Whisper.TimeoutSeconds = defaultWhisperTimeoutSeconds
	}
}

func (c *Config) normalizeLLM() error {
	if value, ok := os.LookupEnv("LLM_ENABLED"); ok {
		c.LLM.Enabled = parseBool(value)
	}
	if value, ok := os.LookupEnv("LLM_MODEL_NAME"); ok {
		c.LLM.Model = value
	}
	if value, ok := os.LookupEnv("LLM_TEMPERATURE"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("LLM_TEMPERATURE: %w", err)
		}
		c.LLM.Temperature = parsed
	}
	if value, ok := os.LookupEnv("LLM_TOP_P"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("LLM_TOP_P: %w", err)
		}
		c.LLM.TopP = parsed
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	// The normalization endpoint shares the whisper gateway unless overridden.
	c.LLM.APIURL = strings.TrimSpace(c.LLM.APIURL)
	if c.LLM.APIURL == "" {
		c.LLM.APIURL = c.Whisper.APIURL
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = c.Whisper.APIKey
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	expanded, err := expandPath(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.Dir = expanded
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.YtDlp = strings.TrimSpace(c.Tools.YtDlp)
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = defaultYtDlpBinary
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
