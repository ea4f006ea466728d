package supplyclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/client"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.SupplyConfig
	baseURL    string
	path       string
}

type supplyResponse struct {
	AvailableSupply *decimal.Decimal `json:"available_supply"`
}

func NewClient(cfg *config.SupplyConfig) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid supply url: %w", err)
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	u.Path, u.RawPath, u.RawQuery = "", "", ""

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		baseURL:    u.String(),
		path:       path,
	}, nil
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) GetAvailableSupply(ctx context.Context) (decimal.Decimal, error) {
	callForSupply := func() (decimal.Decimal, error) {
		opts := &client.HttpClientOptions{
			Path: c.path,
		}

		resp, err := client.SendRequest[struct{}, supplyResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return decimal.Zero, err
		}
		if resp.AvailableSupply == nil {
			return decimal.Zero, retry.Unrecoverable(errors.New("response has no available_supply"))
		}
		if resp.AvailableSupply.IsNegative() {
			return decimal.Zero, retry.Unrecoverable(
				fmt.Errorf("negative available supply %s", resp.AvailableSupply),
			)
		}

		return *resp.AvailableSupply, nil
	}

	supply, err := clientCallWithRetry(ctx, callForSupply, c.cfg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get available supply: %w", err)
	}

	return supply, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.SupplyConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("supply request failed, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// isRetryable retries rate limiting, server errors and transport failures.
// Other client errors and malformed payloads are final.
func isRetryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	var httpErr *client.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, client.ErrMalformedResponse) {
		return false
	}
	return true
}
