// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Gemini client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match sentinel ClientErrors by type.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotConfigured
	ErrTypeAuth
	ErrTypeQuota
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotConfigured = &ClientError{Type: ErrTypeNotConfigured, Message: "Gemini API key not configured"}
	ErrAuthFailed    = &ClientError{Type: ErrTypeAuth, Message: "authentication failed"}
	ErrQuotaExceeded = &ClientError{Type: ErrTypeQuota, Message: "quota exceeded"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultSystemInstruction is the fixed persona prompt sent with every
// request. The credential never appears here; it comes from configuration.
const DefaultSystemInstruction = `
You are Azizbek Mavlonov AI.
You are a highly professional, friendly, smart, and confident AI assistant for the Ultra Chat platform.
Always respond directly to the user's questions.
NEVER introduce yourself unless the user explicitly asks "Who are you?" or "What is your name?".
Use smart, professional emojis like 🧠, ⚙️, 📊, ✅, 🚀, 😊, ✨ naturally in your responses.
Provide high-quality technical, analytical, and creative assistance.
`

// ClientConfig holds configuration options for the Gemini client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: the hosted v1beta endpoint).
	BaseURL string

	// APIKey is the API credential, supplied out-of-band via configuration.
	APIKey string

	// Model is the model identifier (default: "gemini-3-pro-preview").
	Model string

	// SystemInstruction replaces DefaultSystemInstruction when set.
	SystemInstruction string

	// Sampling parameters for single-shot completions. Streaming sends
	// temperature only.
	Temperature float64
	TopK        int
	TopP        float64

	// Timeout for single-shot requests. Streaming requests carry no
	// timeout; a hung stream hangs until the transport gives up.
	Timeout time.Duration

	// RequestsPerMinute caps outgoing calls client-side (0 = default).
	RequestsPerMinute int
}

// DefaultBaseURL is the hosted Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           DefaultBaseURL,
		Model:             "gemini-3-pro-preview",
		SystemInstruction: DefaultSystemInstruction,
		Temperature:       0.7,
		TopK:              40,
		TopP:              0.95,
		Timeout:           60 * time.Second,
		RequestsPerMinute: 30,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Gemini API.
//
// Every call builds a fresh http.Client, so there is no connection reuse
// across calls. The client never retries; a transport, auth or quota failure
// surfaces to the caller as a ClientError and retry policy, if any, belongs
// there.
type Client struct {
	config  *ClientConfig
	limiter *rate.Limiter
}

// NewClient creates a client with the given API key and otherwise default
// configuration.
func NewClient(apiKey string) *Client {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration, filling in
// defaults for zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = "gemini-3-pro-preview"
	}
	if config.SystemInstruction == "" {
		config.SystemInstruction = DefaultSystemInstruction
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.TopK == 0 {
		config.TopK = 40
	}
	if config.TopP == 0 {
		config.TopP = 0.95
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 30
	}

	return &Client{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// SINGLE-SHOT COMPLETION
// =============================================================================

// Complete sends the prior history plus a new prompt and returns the full
// reply text once generation finishes.
func (c *Client) Complete(ctx context.Context, history []*model.Message, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "rate limiter interrupted", Cause: err}
	}

	reqBody := GenerateContentRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: c.config.SystemInstruction}}},
		Contents:          contentsFromHistory(history, prompt),
		GenerationConfig: &GenerationConfig{
			Temperature: &c.config.Temperature,
			TopK:        &c.config.TopK,
			TopP:        &c.config.TopP,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	url := c.config.BaseURL + "/models/" + c.config.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	// Fresh handle per call; no pooling or reuse across calls.
	httpClient := &http.Client{Timeout: c.config.Timeout}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var result GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	text := result.Text()
	if text == "" && len(result.Candidates) == 0 {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "response contained no candidates"}
	}
	return text, nil
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// statusError converts a non-200 response into a typed ClientError. The body
// is decoded best-effort for the API's error message.
func statusError(resp *http.Response) error {
	var apiErr apiError
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ClientError{Type: ErrTypeAuth, Message: msg}
	case http.StatusTooManyRequests:
		return &ClientError{Type: ErrTypeQuota, Message: msg}
	default:
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "request failed: " + msg}
	}
}

// IsAuthError checks whether err is an authentication failure.
func IsAuthError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeAuth
	}
	return false
}

// IsQuotaError checks whether err is a quota failure.
func IsQuotaError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeQuota
	}
	return false
}
