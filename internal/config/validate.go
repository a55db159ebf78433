package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWhisper() error {
	if c.Whisper.APIURL == "" {
		return fmt.Errorf("%w: whisper.api_url is required. Set WHISPER_API_URL or edit the config file (create one with 'scribe config init')", ErrMissingCredentials)
	}
	if c.Whisper.APIKey == "" {
		return fmt.Errorf("%w: whisper.api_key is required. Set WHISPER_API_KEY or edit the config file (create one with 'scribe config init')", ErrMissingCredentials)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %g", c.LLM.Temperature)
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		return fmt.Errorf("llm.top_p must be in (0, 1], got %g", c.LLM.TopP)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
