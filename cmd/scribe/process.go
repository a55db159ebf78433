package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/processor"
	"scribe/internal/services"
	"scribe/internal/services/llm"
	"scribe/internal/services/whisper"
	"scribe/internal/services/ytdlp"
	"scribe/internal/timecode"
)

type processOptions struct {
	lang             string
	sourceType       string
	voiceDescription string
	outputDir        string
	llmPrompt        string
	llmCustomPrompt  string
	disableLLM       bool
	logLevel         string
	logFormat        string
}

func newProcessOptions() *processOptions {
	return &processOptions{}
}

var allowedSourceTypes = map[string]struct{}{
	"youtube":   {},
	"podcast":   {},
	"audiobook": {},
	"dataset":   {},
	"lecture":   {},
}

func runProcess(cmd *cobra.Command, cmdCtx *commandContext, args []string, opts *processOptions) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	sourceType := strings.ToLower(strings.TrimSpace(opts.sourceType))
	if _, ok := allowedSourceTypes[sourceType]; !ok {
		return fmt.Errorf("unknown source type %q (expected youtube, podcast, audiobook, dataset, or lecture)", opts.sourceType)
	}

	logger, err := buildLogger(cfg, opts)
	if err != nil {
		return err
	}

	if missing := deps.FirstMissing(deps.Required(cfg.Tools.YtDlp, cfg.Tools.FFmpeg)); missing != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", missing.Name, missing.Detail, nil)
	}

	outputDir := cfg.Output.Dir
	if strings.TrimSpace(opts.outputDir) != "" {
		expanded, err := config.ExpandPath(opts.outputDir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		if err := os.MkdirAll(expanded, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", expanded, err)
		}
		outputDir = expanded
	}

	runID := uuid.NewString()
	ctx := services.WithRunID(cmd.Context(), runID)
	logger = logger.With(logging.FieldRunID, runID)

	transcriber := whisper.NewClient(whisper.Config{
		APIURL:         cfg.Whisper.APIURL,
		APIKey:         cfg.Whisper.APIKey,
		Model:          cfg.Whisper.Model,
		TimeoutSeconds: cfg.Whisper.TimeoutSeconds,
	})

	normalizer, err := buildNormalizer(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	source := ytdlp.NewService(cfg.Tools.YtDlp, ytdlp.DefaultAudioProfile(), logger)

	request := processor.Request{
		URL:              args[0],
		Lang:             strings.TrimSpace(opts.lang),
		SourceType:       sourceType,
		VoiceDescription: opts.voiceDescription,
	}
	if len(args) > 1 {
		request.StartRaw = args[1]
	}
	if len(args) > 2 {
		request.EndRaw = args[2]
	}

	proc := processor.New(source, transcriber, normalizer, outputDir, logger)
	outcome, err := proc.Process(ctx, request)
	if err != nil {
		return err
	}

	renderOutcome(cmd.OutOrStdout(), outcome, normalizer != nil)
	return nil
}

// buildNormalizer returns nil when LLM normalization is disabled or
// unavailable, which makes the processor fall back to the rule-based form.
// The custom preset without prompt text and a failed health probe both warn
// and disable rather than abort the run.
func buildNormalizer(ctx context.Context, cfg *config.Config, opts *processOptions, logger *slog.Logger) (processor.Normalizer, error) {
	if opts.disableLLM || !cfg.LLM.Enabled {
		return nil, nil
	}

	preset := strings.ToLower(strings.TrimSpace(opts.llmPrompt))
	if preset == llm.PresetCustom && strings.TrimSpace(opts.llmCustomPrompt) == "" {
		logger.Warn("--llm-prompt=custom requires --llm-custom-prompt; using rule-based normalization")
		return nil, nil
	}
	if strings.TrimSpace(opts.llmCustomPrompt) != "" && preset != llm.PresetCustom {
		logger.Warn("--llm-custom-prompt is ignored unless --llm-prompt=custom is set")
	}

	prompt, err := llm.ResolvePrompt(opts.llmPrompt, opts.llmCustomPrompt)
	if err != nil {
		return nil, err
	}

	client := llm.NewClient(llm.Config{
		APIURL:         cfg.LLM.APIURL,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		Temperature:    cfg.LLM.Temperature,
		TopP:           cfg.LLM.TopP,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}, prompt)

	if err := client.Health(ctx); err != nil {
		logger.Warn("llm endpoint unavailable; using rule-based normalization", "error", err.Error())
		return nil, nil
	}
	return client, nil
}

func buildLogger(cfg *config.Config, opts *processOptions) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if strings.TrimSpace(opts.logLevel) != "" {
		level = opts.logLevel
	}
	format := cfg.Logging.Format
	if strings.TrimSpace(opts.logFormat) != "" {
		format = opts.logFormat
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: resolveLogFormat(format),
	})
}

// resolveLogFormat maps "auto" to console on a terminal and json otherwise.
func resolveLogFormat(format string) string {
	if strings.ToLower(strings.TrimSpace(format)) != "auto" {
		return format
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return "console"
	}
	return "json"
}

func renderOutcome(out io.Writer, outcome *processor.Outcome, llmEnabled bool) {
	segment := fmt.Sprintf("%s - %s",
		timecode.Format(outcome.Segment.Start),
		timecode.Format(outcome.Segment.End),
	)
	if outcome.FullVideo {
		segment = "full video"
	}

	normalization := "rule-based"
	switch {
	case llmEnabled && outcome.NormalizationDegraded:
		normalization = "rule-based (llm degraded)"
	case llmEnabled:
		normalization = "llm"
	}

	rows := [][]string{
		{"ID", outcome.Result.ID},
		{"Video", outcome.Metadata.ID},
		{"Speaker", outcome.Metadata.DisplayName},
		{"Segment", segment},
		{"Duration (s)", fmt.Sprintf("%.1f", outcome.Segment.Duration())},
		{"Normalization", normalization},
		{"Audio", outcome.AudioPath},
		{"JSON", outcome.JSONPath},
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Raw transcript:")
	fmt.Fprintln(out, outcome.Result.Text.Raw)
	if outcome.Result.Text.Normalized != outcome.Result.Text.Raw {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Normalized transcript:")
		fmt.Fprintln(out, outcome.Result.Text.Normalized)
	}
}
