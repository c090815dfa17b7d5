package imghost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/tidwall/gjson"
)

const uploadTimeout = 30 * time.Second

// Imge uploads attachments to the im.ge hosting API so replies can link a
// stable public copy of the image.
type Imge struct {
	client    *http.Client
	uploadURL string
	apiKey    string
}

func NewImge(cfg *config.MediaConfig) *Imge {
	return &Imge{
		client:    &http.Client{Timeout: uploadTimeout},
		uploadURL: cfg.ImgeUploadURL,
		apiKey:    cfg.ImgeAPIKey,
	}
}

func (i *Imge) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("source", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", i.apiKey)
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(respBody))
	}

	imageURL := gjson.GetBytes(respBody, "image.url").String()
	if imageURL == "" {
		return "", fmt.Errorf("upload response missing image url: %s", string(respBody))
	}

	return imageURL, nil
}
