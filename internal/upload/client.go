package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/deckify/deckify-uploader/internal/model"
)

const (
	// UploadPath is resolved against the server URL, like a root-relative link
	UploadPath = "/upload"

	// DefaultArtifactName is used when the response carries no filename
	DefaultArtifactName = "presentation.pptx"

	// maxErrorBody bounds how much of a failed response is read for diagnostics
	maxErrorBody = 64 * 1024
)

// Config contains the configuration for the upload client
type Config struct {
	// Endpoint is the service base URL, e.g. http://localhost:5000
	Endpoint string
	// HTTPClient to use to perform HTTP requests
	HTTPClient http.Client
	// Timeout bounds the whole upload, response body included. 0 disables it.
	Timeout time.Duration
	// InactivityTimeout aborts the upload when the request or response body
	// stalls for this long. Waiting for the response headers is not a stall.
	// 0 disables it.
	InactivityTimeout time.Duration
}

// Response is a successful service response
type Response struct {
	StatusCode  int
	ContentType string
	Filename    string
	Body        []byte
}

// Client posts selections to the service
type Client struct {
	config    Config
	uploadURL string
}

// NewClient validates the endpoint and creates a client
func NewClient(config Config) (*Client, error) {
	uploadURL, err := ResolveUploadURL(config.Endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{config: config, uploadURL: uploadURL}, nil
}

// ResolveUploadURL resolves UploadPath against the server URL
func ResolveUploadURL(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", fmt.Errorf("server URL is empty")
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing server URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("server URL must start with http:// or https://")
	}
	if base.Host == "" {
		return "", fmt.Errorf("server URL has no host")
	}
	return base.ResolveReference(&url.URL{Path: UploadPath}).String(), nil
}

// URL returns the resolved upload URL
func (c *Client) URL() string {
	return c.uploadURL
}

// Upload performs a single POST of the selection and reads the whole response
// body on success. There are no retries.
func (c *Client) Upload(ctx context.Context, selection model.Selection) (*Response, error) {
	payload, err := BuildPayload(selection)
	if err != nil {
		return nil, fmt.Errorf("building upload payload: %w", err)
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, c.config.Timeout, ErrTimeout)
		defer cancel()
	}
	ctx, wd := newWatchdog(ctx, c.config.InactivityTimeout)
	defer wd.Cancel()

	body := &requestBody{r: bytes.NewReader(payload.Body), wd: wd}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("setting up upload request: %w", err)
	}
	req.ContentLength = int64(len(payload.Body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(&requestBody{r: bytes.NewReader(payload.Body), wd: wd}), nil
	}
	req.Header.Set("Content-Type", payload.ContentType)

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("performing upload request: %w", err))
	}
	defer resp.Body.Close()
	wd.Resume()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Message: serverMessage(detail)}
	}

	blob, err := io.ReadAll(&kickingReader{r: resp.Body, wd: wd})
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("reading response body: %w", err))
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    attachmentName(resp.Header.Get("Content-Disposition")),
		Body:        blob,
	}, nil
}

// classify maps context termination onto ErrTimeout or ErrCanceled
func classify(ctx context.Context, err error) error {
	if ctx.Err() == nil {
		return err
	}
	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, ErrTimeout),
		errors.Is(cause, os.ErrDeadlineExceeded),
		errors.Is(cause, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(cause, context.Canceled):
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return err
}

// attachmentName extracts the filename parameter of a Content-Disposition header
func attachmentName(header string) string {
	if header == "" {
		return DefaultArtifactName
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil || params["filename"] == "" {
		return DefaultArtifactName
	}
	return params["filename"]
}

// serverMessage pulls the "error" field out of a JSON error body, falling back
// to the trimmed raw text.
func serverMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
