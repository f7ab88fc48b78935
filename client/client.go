package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"deal-engine/domain"
)

// Client calls a remote deal engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx response from the engine.
type APIError struct {
	Status    int              `json:"-"`
	ErrorCode domain.ErrorCode `json:"code"`
	Field     string           `json:"field,omitempty"`
	Message   string           `json:"message"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("deal engine returned %d (%s): %s: %s", e.Status, e.ErrorCode, e.Field, e.Message)
	}
	return fmt.Sprintf("deal engine returned %d (%s): %s", e.Status, e.ErrorCode, e.Message)
}

// Code lets domain.CodeOf classify remote failures like local ones.
func (e *APIError) Code() domain.ErrorCode { return e.ErrorCode }

// Calculate posts input to the worksheet endpoint for strategy and returns
// the raw result document.
func (c *Client) Calculate(ctx context.Context, strategy domain.Strategy, input any) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/worksheet/%s", c.baseURL, strategy)

	jsonData, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, ErrorCode: domain.ErrCodeInternal}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return json.RawMessage(body), nil
}

// CalculateLTR is Calculate with a typed long-term rental result.
func (c *Client) CalculateLTR(ctx context.Context, in domain.LTRInput) (domain.LTRResult, error) {
	raw, err := c.Calculate(ctx, domain.StrategyLTR, in)
	if err != nil {
		return domain.LTRResult{}, err
	}
	var result domain.LTRResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.LTRResult{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result, nil
}
