package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/google/uuid"
)

const maxErrorBody = 1 << 10

// HTTP is a connectionless transport that posts every call as its own request
type HTTP struct {
	url string
	cfg config
}

// NewHTTP returns a transport that posts calls to the given URL
func NewHTTP(url string, opts ...Option) *HTTP {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = cfg.logger.With("transport", "http")

	return &HTTP{url: url, cfg: cfg}
}

// URL returns the address calls are posted to
func (h *HTTP) URL() string {
	return h.url
}

// Call posts the request and waits for its response
func (h *HTTP) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	result, err := h.call(ctx, method, params)
	h.cfg.metrics.observeCall("http", method, err)
	return result, err
}

func (h *HTTP) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()

	body, err := json.Marshal(newRequest(id, method, params))
	if err != nil {
		return nil, errorsmod.Wrapf(ErrNetwork, "failed to encode %s request: %v", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, h.cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, errorsmod.Wrapf(ErrNetwork, "invalid request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range h.cfg.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.cfg.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return nil, errorsmod.Wrapf(ErrTimeout, "%s after %s", method, h.cfg.timeout)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			return nil, errorsmod.Wrapf(ErrNetwork, "post failed: %v", err)
		}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, errorsmod.Wrapf(ErrTimeout, "%s after %s", method, h.cfg.timeout)
		}
		return nil, errorsmod.Wrapf(ErrNetwork, "failed to read response: %v", err)
	}

	var res Response
	decodeErr := json.Unmarshal(payload, &res)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && res.Error != nil {
			return nil, res.Error
		}
		return nil, errorsmod.Wrapf(ErrNetwork, "unexpected status %d: %s", resp.StatusCode, truncate(payload))
	}

	if decodeErr != nil {
		return nil, errorsmod.Wrapf(ErrNetwork, "malformed response: %v", decodeErr)
	}
	if res.CorrelationID() != id {
		return nil, errorsmod.Wrapf(ErrNetwork, "response id %s does not match request id %s", res.CorrelationID(), id)
	}
	if res.Error != nil {
		return nil, res.Error
	}

	return res.Result, nil
}

func truncate(bz []byte) string {
	if len(bz) > maxErrorBody {
		return string(bz[:maxErrorBody]) + "..."
	}
	return string(bz)
}
