package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxImageSize is the store-side upload limit for custom backgrounds.
const MaxImageSize = 20 * 1024 * 1024

// UploadImage stores a custom background for the profile, overwriting any
// previous one. The payload goes up as a multipart form with a single
// "file" part, matching the store contract.
func (c *Client) UploadImage(name string, data []byte) error {
	if len(data) > MaxImageSize {
		return fmt.Errorf("image exceeds %d byte limit", MaxImageSize)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/sync/image/"+c.profile, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return nil
}

// GetImage fetches the profile's custom background. ok is false when none
// has been uploaded.
func (c *Client) GetImage() (data []byte, ok bool, err error) {
	resp, err := c.httpClient.Get(c.baseURL + "/api/sync/image/" + c.profile)
	if err != nil {
		return nil, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, true, nil
}
