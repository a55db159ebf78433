package processor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/services"
	"scribe/internal/transcript"
)

type fakeSource struct {
	meta        transcript.VideoMetadata
	metaErr     error
	downloadErr error

	downloadedBase    string
	downloadedSegment *transcript.TimeSegment
	downloadCalls     int
}

func (f *fakeSource) FetchMetadata(ctx context.Context, url string) (transcript.VideoMetadata, error) {
	return f.meta, f.metaErr
}

func (f *fakeSource) DownloadSegment(ctx context.Context, url, basePath string, segment *transcript.TimeSegment) (string, error) {
	f.downloadCalls++
	f.downloadedBase = basePath
	if segment != nil {
		copied := *segment
		f.downloadedSegment = &copied
	}
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return basePath + ".flac", nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, f.err
}

type fakeNormalizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeNormalizer) Normalize(ctx context.Context, raw string) (string, error) {
	f.calls++
	return f.text, f.err
}

func testMetadata() transcript.VideoMetadata {
	return transcript.VideoMetadata{
		ID:              "abc123",
		DurationSeconds: 180,
		SpeakerID:       "channel-1",
		DisplayName:     "Test Channel",
	}
}

func TestProcessFragment(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	normalizer := &fakeNormalizer{text: "привет мир"}
	p := New(source, &fakeTranscriber{text: "Привет, Мир!"}, normalizer, dir, nil)

	outcome, err := p.Process(context.Background(), Request{
		URL:        "https://example.com/watch?v=abc123",
		StartRaw:   "1:0",
		EndRaw:     "2:0",
		Lang:       "ru-RU",
		SourceType: "youtube",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if outcome.FullVideo {
		t.Fatal("fragment request reported as full video")
	}
	if outcome.Segment.Start != 60 || outcome.Segment.End != 120 {
		t.Fatalf("segment = %+v, want [60, 120)", outcome.Segment)
	}
	if source.downloadedSegment == nil || source.downloadedSegment.Start != 60 || source.downloadedSegment.End != 120 {
		t.Fatalf("download segment = %+v", source.downloadedSegment)
	}

	wantBase := filepath.Join(dir, "abc123_1_0_2_0")
	if source.downloadedBase != wantBase {
		t.Fatalf("download base = %q, want %q", source.downloadedBase, wantBase)
	}
	if outcome.JSONPath != wantBase+".json" {
		t.Fatalf("json path = %q", outcome.JSONPath)
	}

	data, err := os.ReadFile(outcome.JSONPath)
	if err != nil {
		t.Fatalf("read persisted json: %v", err)
	}
	var persisted transcript.Result
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decode persisted json: %v", err)
	}
	if persisted.Text.Raw != "Привет, Мир!" || persisted.Text.Normalized != "привет мир" {
		t.Fatalf("persisted text = %+v", persisted.Text)
	}
	if persisted.Source.Segment.DurationSec != 60 {
		t.Fatalf("duration_sec = %g, want 60", persisted.Source.Segment.DurationSec)
	}
	if persisted.Speaker.ID != "channel-1" {
		t.Fatalf("speaker = %+v", persisted.Speaker)
	}
	if normalizer.calls != 1 {
		t.Fatalf("normalizer calls = %d", normalizer.calls)
	}
	if outcome.NormalizationDegraded {
		t.Fatal("normalization unexpectedly degraded")
	}
}

func TestProcessFullVideo(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "full text"}, nil, dir, nil)

	outcome, err := p.Process(context.Background(), Request{
		URL:        "https://example.com/watch?v=abc123",
		Lang:       "ru-RU",
		SourceType: "youtube",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !outcome.FullVideo {
		t.Fatal("expected full-video mode")
	}
	if source.downloadedSegment != nil {
		t.Fatalf("full-video download received a segment: %+v", source.downloadedSegment)
	}
	if outcome.Segment.Start != 0 || outcome.Segment.End != 180 {
		t.Fatalf("segment = %+v, want [0, 180)", outcome.Segment)
	}
	if want := filepath.Join(dir, "abc123"); source.downloadedBase != want {
		t.Fatalf("download base = %q, want %q", source.downloadedBase, want)
	}
}

func TestProcessStartWithoutEndIsFullVideo(t *testing.T) {
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "x"}, nil, t.TempDir(), nil)

	outcome, err := p.Process(context.Background(), Request{
		URL:      "https://example.com/v",
		StartRaw: "1:0",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !outcome.FullVideo {
		t.Fatal("missing end bound should select the whole video")
	}
	if source.downloadedSegment != nil {
		t.Fatalf("full-video download received a segment: %+v", source.downloadedSegment)
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "x"}, nil, dir, nil)

	_, err := p.Process(context.Background(), Request{
		URL:      "https://example.com/v",
		StartRaw: "bad:::x",
		EndRaw:   "2:0",
	})
	if !errors.Is(err, services.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if source.downloadCalls != 0 {
		t.Fatal("download must not run after a parse failure")
	}
	assertNoArtifacts(t, dir)
}

func TestProcessInvalidRange(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "x"}, nil, dir, nil)

	_, err := p.Process(context.Background(), Request{
		URL:      "https://example.com/v",
		StartRaw: "2:0",
		EndRaw:   "1:0",
	})
	if !errors.Is(err, services.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if source.downloadCalls != 0 {
		t.Fatal("download must not run for an invalid range")
	}
	assertNoArtifacts(t, dir)
}

func TestProcessRangeBeyondDuration(t *testing.T) {
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "x"}, nil, t.TempDir(), nil)

	_, err := p.Process(context.Background(), Request{
		URL:      "https://example.com/v",
		StartRaw: "0",
		EndRaw:   "10:0",
	})
	if !errors.Is(err, services.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestProcessMetadataFailure(t *testing.T) {
	source := &fakeSource{metaErr: errors.New("video unavailable")}
	p := New(source, &fakeTranscriber{}, nil, t.TempDir(), nil)

	_, err := p.Process(context.Background(), Request{URL: "https://example.com/v"})
	if !errors.Is(err, services.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestProcessDownloadFailure(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata(), downloadErr: errors.New("network reset")}
	p := New(source, &fakeTranscriber{text: "x"}, nil, dir, nil)

	_, err := p.Process(context.Background(), Request{URL: "https://example.com/v"})
	if !errors.Is(err, services.ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
	assertNoArtifacts(t, dir)
}

func TestProcessTranscriptionFailure(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{err: errors.New("gateway 502")}, nil, dir, nil)

	_, err := p.Process(context.Background(), Request{URL: "https://example.com/v"})
	if !errors.Is(err, services.ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}
	assertNoArtifacts(t, dir)
}

func TestProcessNormalizationFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	source := &fakeSource{meta: testMetadata()}
	normalizer := &fakeNormalizer{err: errors.New("model overloaded")}
	p := New(source, &fakeTranscriber{text: "Hello,   WORLD"}, normalizer, dir, nil)

	outcome, err := p.Process(context.Background(), Request{
		URL:  "https://example.com/v",
		Lang: "en-US",
	})
	if err != nil {
		t.Fatalf("normalization failure must not abort the run: %v", err)
	}
	if !outcome.NormalizationDegraded {
		t.Fatal("expected degraded normalization")
	}
	if outcome.Result.Text.Normalized != "hello, world" {
		t.Fatalf("normalized = %q, want rule-based fallback", outcome.Result.Text.Normalized)
	}
	if _, err := os.Stat(outcome.JSONPath); err != nil {
		t.Fatalf("json must still be persisted: %v", err)
	}
}

func TestProcessNilNormalizerUsesSimpleForm(t *testing.T) {
	source := &fakeSource{meta: testMetadata()}
	p := New(source, &fakeTranscriber{text: "  Mixed   CASE  "}, nil, t.TempDir(), nil)

	outcome, err := p.Process(context.Background(), Request{
		URL:  "https://example.com/v",
		Lang: "en-US",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if outcome.Result.Text.Normalized != "mixed case" {
		t.Fatalf("normalized = %q", outcome.Result.Text.Normalized)
	}
	if outcome.NormalizationDegraded {
		t.Fatal("nil normalizer is not a degradation")
	}
}

func TestProcessEmptyNormalizerOutputDegrades(t *testing.T) {
	source := &fakeSource{meta: testMetadata()}
	normalizer := &fakeNormalizer{text: "   "}
	p := New(source, &fakeTranscriber{text: "Some Text"}, normalizer, t.TempDir(), nil)

	outcome, err := p.Process(context.Background(), Request{URL: "https://example.com/v", Lang: "en-US"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !outcome.NormalizationDegraded {
		t.Fatal("empty normalizer output should degrade")
	}
	if outcome.Result.Text.Normalized != "some text" {
		t.Fatalf("normalized = %q", outcome.Result.Text.Normalized)
	}
}

func TestProcessMissingURL(t *testing.T) {
	p := New(&fakeSource{}, &fakeTranscriber{}, nil, t.TempDir(), nil)
	_, err := p.Process(context.Background(), Request{URL: "   "})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

// assertNoArtifacts verifies a failed run left no JSON behind.
func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".json") {
			t.Fatalf("unexpected artifact %s", entry.Name())
		}
	}
}
