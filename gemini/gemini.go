// Package gemini calls the Google generative-language API to produce a
// summary from a prompt.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/jsonapi"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Generation parameters are fixed, not per-request configuration.
const (
	temperature     = 0.2
	topP            = 0.9
	maxOutputTokens = 1024
)

// ErrEmptyResponse is returned when the API call succeeds but no candidate
// contains any text.
var ErrEmptyResponse = errors.New("Empty response from model.")

func New(log *slog.Logger, baseURL, apiKey, model string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		log:     log,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

type Client struct {
	log     *slog.Logger
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Generate sends the prompt as a single user message and returns the model's
// text. A single attempt is made, with no retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	url, err := jsonapi.URL(c.baseURL).
		Path("v1", "models", c.model+":generateContent").
		Query(map[string]string{"key": c.apiKey}).
		String()
	if err != nil {
		return "", fmt.Errorf("failed to create generateContent URL: %w", err)
	}

	body := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopP:            topP,
			MaxOutputTokens: maxOutputTokens,
		},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("calling generative-language API", slog.String("model", c.model))
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generative-language API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generative-language API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var gcr generateContentResponse
	if err := json.Unmarshal(respBody, &gcr); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return joinParts(gcr)
}

// joinParts concatenates the first candidate's non-empty text fragments with
// newlines and trims the result.
func joinParts(gcr generateContentResponse) (string, error) {
	if len(gcr.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var texts []string
	for _, p := range gcr.Candidates[0].Content.Parts {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		texts = append(texts, p.Text)
	}
	summary := strings.TrimSpace(strings.Join(texts, "\n"))
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}
