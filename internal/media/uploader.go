package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Uploader turns a raw chat attachment into a stable URL. Uploads happen
// synchronously before the carrying message is persisted or broadcast.
type Uploader interface {
	Upload(ctx context.Context, senderEmail, name, base64Data string) (string, error)
}

// HTTPUploader posts attachments to the media service. The *http.Client is a
// process-scoped resource owned by the composition root, never constructed
// lazily inside calls.
type HTTPUploader struct {
	Client   *http.Client
	Endpoint string
}

func NewHTTPUploader(client *http.Client, endpoint string) *HTTPUploader {
	return &HTTPUploader{Client: client, Endpoint: endpoint}
}

type uploadRequest struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name,omitempty"`
	Data     []byte `json:"data"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (u *HTTPUploader) Upload(ctx context.Context, senderEmail, name, base64Data string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("attachment is not valid base64: %w", err)
	}

	key := uuid.New().String()
	publicID := fmt.Sprintf("chat_images/%s/sent-by=%s/%s", key, senderEmail, key)

	body, err := json.Marshal(uploadRequest{PublicID: publicID, Name: name, Data: raw})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call media service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("media service returned status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode media response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("media service returned empty url")
	}
	return out.URL, nil
}
