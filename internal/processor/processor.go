package processor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/textutil"
	"scribe/internal/transcript"
)

// MediaSource resolves metadata for a URL and downloads bounded audio.
type MediaSource interface {
	FetchMetadata(ctx context.Context, url string) (transcript.VideoMetadata, error)
	DownloadSegment(ctx context.Context, url, basePath string, segment *transcript.TimeSegment) (string, error)
}

// Transcriber converts an audio file into raw text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Normalizer rewrites a raw transcript into its normalized form.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) (string, error)
}

// Request describes one pipeline invocation.
type Request struct {
	URL              string
	StartRaw         string // empty means start of media
	EndRaw           string // empty means end of media
	Lang             string
	SourceType       string
	VoiceDescription string
}

// Outcome reports everything the pipeline produced for one request.
type Outcome struct {
	Result    transcript.Result
	JSONPath  string
	AudioPath string
	Metadata  transcript.VideoMetadata
	Segment   transcript.TimeSegment
	FullVideo bool
	// NormalizationDegraded is set when the LLM pass failed and the simple
	// rule-based normalization was persisted instead.
	NormalizationDegraded bool
}

// Processor drives a request through each stage in order. A failure in any
// stage except normalization aborts the run; normalization degrades to the
// rule-based form.
type Processor struct {
	source     MediaSource
	transcribe Transcriber
	normalize  Normalizer // nil disables LLM normalization
	outputDir  string
	logger     *slog.Logger
}

// New assembles a Processor. normalizer may be nil, in which case the simple
// rule-based normalization is always used.
func New(source MediaSource, transcriber Transcriber, normalizer Normalizer, outputDir string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Processor{
		source:     source,
		transcribe: transcriber,
		normalize:  normalizer,
		outputDir:  outputDir,
		logger:     logger.With(logging.FieldComponent, "processor"),
	}
}

// Process runs the pipeline for one request. On success the transcript JSON
// exists on disk; on any fatal error nothing is persisted.
func (p *Processor) Process(ctx context.Context, req Request) (*Outcome, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, services.Wrap(services.ErrConfiguration, "request", "validate", "url is required", nil)
	}

	ctx = services.WithStage(ctx, "metadata")
	meta, err := p.source.FetchMetadata(ctx, url)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnavailable, "metadata", "fetch", url, err)
	}
	p.logger.Info("source resolved",
		logging.FieldStage, "metadata",
		"video_id", meta.ID,
		"duration_sec", meta.DurationSeconds,
	)

	segment, fullVideo, err := resolveSegment(req.StartRaw, req.EndRaw, meta.DurationSeconds)
	if err != nil {
		return nil, err
	}

	baseName := deriveBaseName(meta, req.StartRaw, req.EndRaw, fullVideo)
	basePath := filepath.Join(p.outputDir, baseName)

	ctx = services.WithStage(ctx, "download")
	var window *transcript.TimeSegment
	if !fullVideo {
		window = &segment
	}
	audioPath, err := p.source.DownloadSegment(ctx, url, basePath, window)
	if err != nil {
		return nil, services.Wrap(services.ErrDownloadFailed, "download", "audio", meta.ID, err)
	}
	p.logger.Info("audio downloaded",
		logging.FieldStage, "download",
		"path", audioPath,
		"duration_sec", segment.Duration(),
	)

	ctx = services.WithStage(ctx, "transcribe")
	raw, err := p.transcribe.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrTranscriptionFailed, "transcribe", "request", meta.ID, err)
	}
	p.logger.Info("transcription complete",
		logging.FieldStage, "transcribe",
		"chars", len(raw),
	)

	normalized, degraded := p.normalizeText(ctx, raw, req.Lang)

	result := transcript.NewResult(meta, segment, raw, normalized, req.Lang, req.SourceType, req.VoiceDescription)

	jsonPath := basePath + ".json"
	if err := result.WriteFile(jsonPath); err != nil {
		return nil, fmt.Errorf("persist transcript %s: %w", jsonPath, err)
	}
	p.logger.Info("transcript persisted",
		logging.FieldStage, "persist",
		"path", jsonPath,
		"id", result.ID,
	)

	return &Outcome{
		Result:                result,
		JSONPath:              jsonPath,
		AudioPath:             audioPath,
		Metadata:              meta,
		Segment:               segment,
		FullVideo:             fullVideo,
		NormalizationDegraded: degraded,
	}, nil
}

// normalizeText applies the configured normalizer, falling back to the simple
// rule-based form when the normalizer is absent or fails. The degraded flag is
// only set for a failed LLM pass, not for the nil-normalizer path.
func (p *Processor) normalizeText(ctx context.Context, raw, lang string) (string, bool) {
	if p.normalize == nil {
		return textutil.NormalizeSimple(raw, lang), false
	}

	ctx = services.WithStage(ctx, "normalize")
	normalized, err := p.normalize.Normalize(ctx, raw)
	if err != nil {
		wrapped := services.Wrap(services.ErrNormalizationFailed, "normalize", "llm", "falling back to rule-based normalization", err)
		p.logger.Warn("normalization degraded",
			logging.FieldStage, "normalize",
			"error", wrapped.Error(),
		)
		return textutil.NormalizeSimple(raw, lang), true
	}
	if strings.TrimSpace(normalized) == "" {
		p.logger.Warn("normalizer returned empty text, using rule-based form",
			logging.FieldStage, "normalize",
		)
		return textutil.NormalizeSimple(raw, lang), true
	}
	return normalized, false
}
