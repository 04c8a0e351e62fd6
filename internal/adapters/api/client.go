package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/version"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 10 * time.Second

	// SessionTokenHeader carries the server-issued session token on login and signup responses.
	SessionTokenHeader = "X-Session-Token"
)

// Client talks to the RUMBLE HTTP API. The zero value is not usable; BaseURL is required.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
	// statusKinds overrides the default status classification for this endpoint.
	statusKinds map[int]domain.ErrorKind
	command     bool
}

type response struct {
	header http.Header
	body   []byte
}

func (c Client) do(ctx context.Context, req call) (response, error) {
	endpoint, err := buildAPIURL(c.BaseURL, req.path)
	if err != nil {
		return response{}, err
	}
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode request: %w", req.op, err)
		}
		body = bytes.NewReader(payload)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, req.method, endpoint, body)
	if err != nil {
		return response{}, fmt.Errorf("%s: create request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	started := time.Now()
	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		c.logger().Debug("api request failed", "op", req.op, "method", req.method, "path", req.path, "error", err)
		return response{}, transportError(req.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, transportError(req.op, err)
	}
	c.logger().Debug("api request", "op", req.op, "method", req.method, "path", req.path, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response{}, statusError(req, resp.StatusCode, payload)
	}

	return response{header: resp.Header, body: payload}, nil
}

func (c Client) doJSON(ctx context.Context, req call, out any) (http.Header, error) {
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return resp.header, nil
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, &domain.Error{Kind: domain.KindNetworkOrServer, Op: req.op, Message: "empty response body"}
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return nil, &domain.Error{Kind: domain.KindNetworkOrServer, Op: req.op, Message: "decode response", Cause: err}
	}

	return resp.header, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func transportError(op string, err error) error {
	kind := domain.KindNetworkOrServer
	if errors.Is(err, context.DeadlineExceeded) {
		kind = domain.KindTimeout
	}

	return &domain.Error{Kind: kind, Op: op, Message: err.Error(), Cause: err}
}

func statusError(req call, status int, body []byte) error {
	text := responseText(body)

	kind, ok := req.statusKinds[status]
	if !ok {
		kind = classifyStatus(status, text, req.command)
	}

	return &domain.Error{
		Kind:    kind,
		Op:      req.op,
		Message: fmt.Sprintf("HTTP %d: %s", status, text),
		Status:  status,
	}
}

func classifyStatus(status int, text string, command bool) domain.ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.KindUnauthorized
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusConflict, http.StatusPreconditionFailed, http.StatusUnprocessableEntity:
		return domain.KindPreconditionFailed
	case http.StatusBadRequest:
		if command && strings.Contains(strings.ToLower(text), "unknown command") {
			return domain.KindInvalidCommand
		}
		return domain.KindNetworkOrServer
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return domain.KindTimeout
	default:
		return domain.KindNetworkOrServer
	}
}

// responseText prefers a JSON {"message": ...} body and falls back to the raw text.
func responseText(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	var payload messagePayload
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
	}

	return string(trimmed)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

func ownerQuery(caller domain.Caller) url.Values {
	if caller.UserID == "" {
		return nil
	}
	return url.Values{"owner": []string{string(caller.UserID)}}
}
