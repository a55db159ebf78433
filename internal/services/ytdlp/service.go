package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/textutil"
	"scribe/internal/transcript"
)

// Service fetches metadata and downloads bounded audio segments via yt-dlp.
type Service struct {
	binary        string
	profile       AudioProfile
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a yt-dlp service with the given binary name and audio
// profile. A nil logger discards output.
func NewService(binary string, profile AudioProfile, logger *slog.Logger) *Service {
	if binary == "" {
		binary = Command
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		binary:  binary,
		profile: profile,
		logger:  logger.With(logging.FieldComponent, "ytdlp"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.commandRunner = runner
}

// metadataPayload mirrors the fields of `yt-dlp -J` output the pipeline
// consumes.
type metadataPayload struct {
	ID         string  `json:"id"`
	Duration   float64 `json:"duration"`
	ChannelID  string  `json:"channel_id"`
	UploaderID string  `json:"uploader_id"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
}

// FetchMetadata extracts video metadata without downloading media. The
// speaker id resolves through the first non-empty of channel id, uploader id,
// and the sanitized video id.
func (s *Service) FetchMetadata(ctx context.Context, url string) (transcript.VideoMetadata, error) {
	var meta transcript.VideoMetadata
	if strings.TrimSpace(url) == "" {
		return meta, errors.New("fetch metadata: url required")
	}

	out, err := s.run(ctx, s.binary, "--dump-single-json", "--no-warnings", "--quiet", url)
	if err != nil {
		return meta, fmt.Errorf("fetch metadata: %w", err)
	}

	var payload metadataPayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return meta, fmt.Errorf("fetch metadata: parse output: %w", err)
	}

	videoID := textutil.SanitizeFileName(payload.ID)
	if videoID == "" {
		return meta, errors.New("fetch metadata: missing video id in extractor output")
	}

	meta = transcript.VideoMetadata{
		ID:              videoID,
		DurationSeconds: payload.Duration,
		SpeakerID:       firstNonEmpty(payload.ChannelID, payload.UploaderID, videoID),
		DisplayName:     firstNonEmpty(payload.Channel, payload.Uploader, "unknown"),
	}
	s.logger.Debug("metadata fetched",
		"video_id", meta.ID,
		"duration_sec", meta.DurationSeconds,
		"speaker_id", meta.SpeakerID,
	)
	return meta, nil
}

// DownloadSegment downloads the audio for url into {basePath}.flac, applying
// the service's audio profile. A nil segment fetches the entire media. The
// backend can report success without producing output, so the expected file
// is checked explicitly before returning.
func (s *Service) DownloadSegment(ctx context.Context, url, basePath string, segment *transcript.TimeSegment) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("download: url required")
	}
	if strings.TrimSpace(basePath) == "" {
		return "", errors.New("download: output base path required")
	}

	args := s.buildDownloadArgs(url, basePath, segment)
	s.logger.Debug("downloading audio", "args", strings.Join(args, " "))
	if _, err := s.run(ctx, s.binary, args...); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	flacPath := basePath + ".flac"
	if _, err := os.Stat(flacPath); err != nil {
		return "", fmt.Errorf("download: expected output %s was not produced: %w", flacPath, err)
	}
	return flacPath, nil
}

func (s *Service) buildDownloadArgs(url, basePath string, segment *transcript.TimeSegment) []string {
	p := s.profile
	postArgs := fmt.Sprintf(
		"-ar %d -ac %d -af loudnorm=I=%s:TP=%s:LRA=%s,aformat=sample_fmts=s16:channel_layouts=mono -compression_level %d",
		p.SampleRate,
		p.Channels,
		formatFloat(p.IntegratedLUFS),
		formatFloat(p.TruePeakDBTP),
		formatFloat(p.LoudnessRangeLU),
		p.CompressionLevel,
	)

	args := []string{
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "flac",
		"--postprocessor-args", "ExtractAudio:" + postArgs,
		"--output", basePath + ".%(ext)s",
		"--no-warnings",
		"--quiet",
	}

	if segment != nil {
		args = append(args,
			"--download-sections",
			fmt.Sprintf("*%s-%s", formatFloat(segment.Start), formatFloat(segment.End)),
		)
		if p.ForceKeyframes {
			args = append(args, "--force-keyframes-at-cuts")
		}
	} else {
		args = append(args, "--extractor-args", fullVideoExtractorArgs)
	}

	return append(args, url)
}

func (s *Service) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
