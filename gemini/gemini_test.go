package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		resp := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: "  ### English Summary\nAll good.  "}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(newTestLogger(), srv.URL, "test-key", "gemini-1.5-flash", srv.Client())
	summary, err := c.Generate(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	if gotPath != "/v1/models/gemini-1.5-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("unexpected key %q", gotKey)
	}
	expectedBody := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: "summarize this"}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopP:            topP,
			MaxOutputTokens: maxOutputTokens,
		},
	}
	if diff := cmp.Diff(expectedBody, gotBody); diff != "" {
		t.Errorf("unexpected request body (-want +got):\n%s", diff)
	}
	if summary != "### English Summary\nAll good." {
		t.Errorf("expected trimmed summary, got %q", summary)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(newTestLogger(), srv.URL, "test-key", "gemini-1.5-flash", srv.Client())
	_, err := c.Generate(context.Background(), "summarize this")
	if err == nil {
		t.Fatal("expected an error for a non-success status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected error to include the upstream status code, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected error to include the upstream body, got %q", err.Error())
	}
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(newTestLogger(), srv.URL, "test-key", "gemini-1.5-flash", nil)
	_, err := c.Generate(context.Background(), "summarize this")
	if err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestJoinParts(t *testing.T) {
	tests := []struct {
		name        string
		resp        generateContentResponse
		expected    string
		expectedErr error
	}{
		{
			name:        "no candidates",
			resp:        generateContentResponse{},
			expectedErr: ErrEmptyResponse,
		},
		{
			name: "all fragments empty",
			resp: generateContentResponse{
				Candidates: []candidate{
					{Content: content{Parts: []part{{Text: ""}, {Text: "   "}}}},
				},
			},
			expectedErr: ErrEmptyResponse,
		},
		{
			name: "empty fragments filtered, remainder joined",
			resp: generateContentResponse{
				Candidates: []candidate{
					{Content: content{Parts: []part{{Text: "first"}, {Text: " "}, {Text: "second"}}}},
				},
			},
			expected: "first\nsecond",
		},
		{
			name: "only the first candidate is used",
			resp: generateContentResponse{
				Candidates: []candidate{
					{Content: content{Parts: []part{{Text: "chosen"}}}},
					{Content: content{Parts: []part{{Text: "ignored"}}}},
				},
			},
			expected: "chosen",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := joinParts(tt.resp)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if actual != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, actual)
			}
		})
	}
}
