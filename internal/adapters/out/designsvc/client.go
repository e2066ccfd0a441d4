// Package designsvc provides the HTTP client for the design generation
// service, which turns a customer's prompt into a T-shirt design image.
package designsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Client calls the design generation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a design service client. Design generation is slow, so
// the timeout should be generous compared to other service calls.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	OrderID string `json:"order_id"`
	Prompt  string `json:"prompt"`
}

type generateResponse struct {
	ImagePath string `json:"image_path"`
	Error     string `json:"error"`
}

// Generate requests a design for the order's prompt and returns the path of
// the produced image.
func (c *Client) Generate(ctx context.Context, orderID kernel.UUID, prompt string) (ports.DesignResult, error) {
	body, err := json.Marshal(generateRequest{
		OrderID: orderID.String(),
		Prompt:  prompt,
	})
	if err != nil {
		return ports.DesignResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/designs", bytes.NewReader(body))
	if err != nil {
		return ports.DesignResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.DesignResult{}, fmt.Errorf("design service request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.DesignResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return ports.DesignResult{}, fmt.Errorf("design service returned %d: %s", resp.StatusCode, raw)
	}

	var payload generateResponse
	if err = json.Unmarshal(raw, &payload); err != nil {
		return ports.DesignResult{}, fmt.Errorf("design service response is not valid JSON: %w", err)
	}

	if payload.Error != "" {
		return ports.DesignResult{}, fmt.Errorf("design service error: %s", payload.Error)
	}
	if payload.ImagePath == "" {
		return ports.DesignResult{}, fmt.Errorf("design service returned no image path")
	}

	return ports.DesignResult{ImagePath: payload.ImagePath}, nil
}
