// Package ocr calls the external text-recognition service.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"

	_ "image/jpeg"
	_ "image/png"
)

const DefaultLanguage = "eng"

// Client sends statement images to the recognizer and returns the raw text.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Recognize validates the image bytes locally (PNG/JPEG) before calling out,
// then posts them with the language hint and returns the recognized text.
func (c *Client) Recognize(ctx context.Context, img []byte, language string) (string, error) {
	if _, _, err := image.Decode(bytes.NewReader(img)); err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if language == "" {
		language = DefaultLanguage
	}

	endpoint := c.baseURL + "/recognize?lang=" + url.QueryEscape(language)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(img))
	if err != nil {
		return "", fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call recognizer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("recognizer returned status %d", resp.StatusCode)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode recognizer response: %w", err)
	}
	return body.Text, nil
}
