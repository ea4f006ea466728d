package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
)

const maxErrorBodyLen = 512

var ErrMalformedResponse = errors.New("malformed response body")

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	// Timeout overrides the client default when positive.
	Timeout time.Duration
	Path    string
	// TemplatePath is used as the metrics label so query strings don't blow
	// up label cardinality.
	TemplatePath string
	Headers      map[string]string
}

// HttpError is returned for any non-2xx response.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if repeated.
func (e *HttpError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// SendRequest sends a JSON request built from input and decodes the JSON
// response into R. A nil input sends no body.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	url := client.GetBaseURL() + opts.Path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	templatePath := opts.TemplatePath
	if templatePath == "" {
		templatePath = opts.Path
	}
	observe := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, templatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		observe(0)
		return nil, fmt.Errorf("failed to send request to %s: %w", templatePath, err)
	}
	defer resp.Body.Close()
	observe(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		log.Ctx(ctx).Debug().
			Int("status_code", resp.StatusCode).
			Str("path", templatePath).
			Msg("Request returned non-success status")
		return nil, &HttpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result R
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrMalformedResponse, templatePath, err)
	}

	return &result, nil
}
