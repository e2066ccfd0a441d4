// Package storagesvc provides the HTTP client for the remote file storage
// service, which stores order packages and returns shareable links.
package storagesvc

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

// Client calls the storage service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a storage service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type uploadRequest struct {
	OrderID  string `json:"order_id"`
	FilePath string `json:"file_path"`
}

type uploadResponse struct {
	RemoteLink string `json:"remote_link"`
	Error      string `json:"error"`
}

// Upload stores the order's package file remotely and returns the link under
// which it can be downloaded.
func (c *Client) Upload(ctx context.Context, orderID kernel.UUID, filePath string) (ports.UploadResult, error) {
	body, err := json.Marshal(uploadRequest{
		OrderID:  orderID.String(),
		FilePath: filePath,
	})
	if err != nil {
		return ports.UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/uploads", bytes.NewReader(body))
	if err != nil {
		return ports.UploadResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("storage service request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.UploadResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return ports.UploadResult{}, fmt.Errorf("storage service returned %d: %s", resp.StatusCode, raw)
	}

	var payload uploadResponse
	if err = json.Unmarshal(raw, &payload); err != nil {
		return ports.UploadResult{}, fmt.Errorf("storage service response is not valid JSON: %w", err)
	}

	if payload.Error != "" {
		return ports.UploadResult{}, fmt.Errorf("storage service error: %s", payload.Error)
	}
	if payload.RemoteLink == "" {
		return ports.UploadResult{}, fmt.Errorf("storage service returned no remote link")
	}

	return ports.UploadResult{RemoteLink: payload.RemoteLink}, nil
}
