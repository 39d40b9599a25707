// Package gemini provides an assistant model adapter using the Google
// Gemini generative-language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driven"
)

// Ensure Model implements the interface.
var _ driven.AssistantModel = (*Model)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash-latest"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Gemini assistant model.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL (default: DefaultBaseURL).
	BaseURL string

	// Model is the model to use (default: DefaultModel).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Model provides text generation using the Gemini API.
type Model struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the Gemini :generateContent request format.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the Gemini :generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the Gemini error envelope.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// New creates a Gemini model from a config.
func New(cfg Config) *Model {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Model{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// NewModel adapts New to the driven.AssistantFactory shape.
func NewModel(apiKey string) driven.AssistantModel {
	return New(Config{APIKey: apiKey})
}

// Generate produces a text completion for a prompt.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", m.baseURL, m.model, m.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", wrapAPIError(genResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	var result strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		result.WriteString(p.Text)
	}
	return result.String(), nil
}

// Ping validates the API key with a model lookup, without running
// inference. An invalid key surfaces as domain.ErrAssistantKeyInvalid.
func (m *Model) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1beta/models/%s?key=%s", m.baseURL, m.model, m.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: failed to create ping request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("gemini: API returned status %d (failed to read body: %w)", resp.StatusCode, readErr)
	}

	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return wrapAPIError(envelope.Error)
	}
	return fmt.Errorf("gemini: API returned status %d: %s", resp.StatusCode, string(body))
}

// ModelName returns the name of the model being used.
func (m *Model) ModelName() string {
	return m.model
}

// wrapAPIError maps a Gemini error envelope onto the domain error
// taxonomy. Key rejections are tagged so callers can clear the stored
// key and force re-entry.
func wrapAPIError(e *apiError) error {
	if isKeyRejection(e) {
		return fmt.Errorf("%w: %s", domain.ErrAssistantKeyInvalid, e.Message)
	}
	return fmt.Errorf("gemini error %d (%s): %s", e.Code, e.Status, e.Message)
}

func isKeyRejection(e *apiError) bool {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return true
	}
	return strings.Contains(e.Message, "API key not valid") ||
		strings.Contains(e.Message, "API_KEY_INVALID")
}
