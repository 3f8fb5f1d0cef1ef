package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gfranco7/viaticos-platform/internal/viatico"
)

const (
	defaultSubmitTimeout   = 10 * time.Second
	defaultDownloadTimeout = 30 * time.Second
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds gateway configuration.
type Config struct {
	BaseURL         string
	SubmitTimeout   time.Duration
	DownloadTimeout time.Duration
}

// Client issues the outbound calls of the submission and report flows.
// Exactly one network call is made per invocation; nothing is retried.
type Client struct {
	baseURL         string
	submitTimeout   time.Duration
	downloadTimeout time.Duration
	httpClient      HTTPClient
	logger          *zap.Logger
}

// Receipt is the opaque response body returned by a successful submission.
// The gateway does not interpret it.
type Receipt struct {
	Body []byte
}

// Document is the raw result of a report fetch, before the download flow's
// content validation.
type Document struct {
	ContentType   string
	ContentLength int64
	Body          []byte
}

// NewClient creates a gateway client for the configured base address.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = defaultSubmitTimeout
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = defaultDownloadTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		submitTimeout:   cfg.SubmitTimeout,
		downloadTimeout: cfg.DownloadTimeout,
		httpClient:      &http.Client{},
		logger:          logger,
	}
}

// Submit sends one reimbursement request to POST {base}/form with a bounded
// wait and maps the outcome into the error taxonomy. On failure the caller
// still holds the unsent request and may re-issue Submit.
func (c *Client) Submit(ctx context.Context, req *viatico.Request) (*Receipt, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "encoding request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	requestID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/form", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "building request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("submitting reimbursement request",
		zap.String("url", httpReq.URL.String()),
		zap.String("request_id", requestID),
		zap.Int("line_items", len(req.Conceptos)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		gerr := classifyTransport(err)
		c.logger.Warn("submission transport failure",
			zap.String("request_id", requestID),
			zap.String("kind", gerr.Kind.String()),
			zap.Error(err))
		return nil, gerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gerr := rejection(resp.StatusCode, serverMessage(body))
		c.logger.Warn("submission rejected",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", gerr.Message))
		return nil, gerr
	}

	c.logger.Info("submission accepted",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode))
	return &Receipt{Body: body}, nil
}

// DownloadDocument fetches the aggregate report via POST {base}/document
// with the longer download bound. It maps connection and status outcomes;
// content validation belongs to the download flow.
func (c *Client) DownloadDocument(ctx context.Context, period string) (*Document, error) {
	body := []byte("{}")
	if period != "" {
		var err error
		body, err = json.Marshal(map[string]string{"period": period})
		if err != nil {
			return nil, &Error{Kind: KindUnexpected, Message: "encoding period", Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/document", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "building request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("requesting report document",
		zap.String("url", httpReq.URL.String()),
		zap.String("period", period))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		gerr := classifyTransport(err)
		c.logger.Warn("report transport failure",
			zap.String("kind", gerr.Kind.String()),
			zap.Error(err))
		return nil, gerr
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejection(resp.StatusCode, serverMessage(content))
	}

	c.logger.Debug("report document received",
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Int64("content_length", resp.ContentLength))

	return &Document{
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          content,
	}, nil
}

// classifyTransport maps a transport failure into the taxonomy, in priority
// order: refused connection, unresolvable host, timeout, everything else.
func classifyTransport(err error) *Error {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &Error{Kind: KindServerUnavailable, Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Kind: KindAddressNotFound, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindNoResponse, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindNoResponse, Err: err}
	}
	return &Error{Kind: KindUnexpected, Message: fmt.Sprintf("transport failure: %v", err), Err: err}
}

// serverMessage extracts the message or error field from a JSON error body.
// A body that is not JSON, or carries neither field, yields "" so the caller
// falls back to the status reason phrase.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
