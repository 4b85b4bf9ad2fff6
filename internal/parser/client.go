package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"resume-builder/internal/model"
)

// ErrRemote wraps every failure of the third-party parsing service.
var ErrRemote = errors.New("resume parsing service failed")

const maxResponseBytes = 2 << 20

// Client posts documents to a third-party resume parsing endpoint. The
// endpoint answers with a resume object, either bare or under "data".
type Client struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{Endpoint: endpoint, APIKey: apiKey, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) Parse(ctx context.Context, u Upload) (model.Resume, error) {
	body, contentType, err := multipartBody(u)
	if err != nil {
		return model.Resume{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, body)
	if err != nil {
		return model.Resume{}, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return model.Resume{}, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.Resume{}, fmt.Errorf("%w: read response: %v", ErrRemote, err)
	}
	slog.Debug("parser: remote response", "status", resp.StatusCode, "bytes", len(raw), "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return model.Resume{}, fmt.Errorf("%w: status %d", ErrRemote, resp.StatusCode)
	}
	return decodeResume(raw)
}

func decodeResume(raw []byte) (model.Resume, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	payload := raw
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		payload = envelope.Data
	}
	if err := model.Validate(payload); err != nil {
		return model.Resume{}, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	var r model.Resume
	if err := json.Unmarshal(payload, &r); err != nil {
		return model.Resume{}, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	return r, nil
}

func multipartBody(u Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, u.Filename))
	ct := u.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = MIMEType(u.Filename)
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
