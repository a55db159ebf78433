package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("auth header = %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llm" {
			t.Fatalf("model = %q", req.Model)
		}
		if req.Temperature != 0.3 || req.TopP != 0.9 {
			t.Fatalf("sampling params = %v / %v", req.Temperature, req.TopP)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "raw transcript" {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": "Clean transcript."},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm", Temperature: 0.3, TopP: 0.9}, "")
	text, err := client.Normalize(context.Background(), "raw transcript")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if text != "Clean transcript." {
		t.Fatalf("text = %q", text)
	}
}

func TestNormalizeDeltaFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": ""},
					"delta":   map[string]any{"content": "from delta"},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm"}, "")
	text, err := client.Normalize(context.Background(), "raw")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if text != "from delta" {
		t.Fatalf("text = %q", text)
	}
}

func TestNormalizeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm"}, "")
	_, err := client.Normalize(context.Background(), "raw")
	if err == nil || !strings.Contains(err.Error(), "http 429") {
		t.Fatalf("expected http error, got %v", err)
	}
}

func TestNormalizeEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm"}, "")
	if _, err := client.Normalize(context.Background(), "raw"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm"}, "")
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
}

func TestHealthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "key", Model: "llm"}, "")
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error for unavailable gateway")
	}
}

func TestResolvePrompt(t *testing.T) {
	for _, preset := range []string{"", PresetDefault, PresetPodcast, PresetAudiobook, PresetLecture} {
		prompt, err := ResolvePrompt(preset, "")
		if err != nil {
			t.Fatalf("ResolvePrompt(%q) returned error: %v", preset, err)
		}
		if prompt == "" {
			t.Fatalf("ResolvePrompt(%q) returned empty prompt", preset)
		}
	}

	if prompt, err := ResolvePrompt(PresetCustom, "my prompt"); err != nil || prompt != "my prompt" {
		t.Fatalf("custom prompt = %q (%v)", prompt, err)
	}
	if _, err := ResolvePrompt(PresetCustom, "  "); err == nil {
		t.Fatal("custom preset without text should fail")
	}
	if _, err := ResolvePrompt("banter", ""); err == nil {
		t.Fatal("unknown preset should fail")
	}
}
