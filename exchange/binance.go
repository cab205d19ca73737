// Package exchange is the market-data and balance collaborator: a thin
// Binance REST client for candle history, spot prices and the account
// balance pre-flight. The bot never places orders through it.
package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/swingbot/market"
	"golang.org/x/time/rate"
)

// ErrDataUnavailable wraps any transport or venue failure. The scan loop
// treats it as "skip this instrument this cycle".
var ErrDataUnavailable = errors.New("market data unavailable")

const defaultBaseURL = "https://api.binance.us"

// Client talks to the Binance REST API. Public endpoints (klines, ticker)
// need no credentials; the balance endpoint requires a signed request.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	http      *http.Client
	limiter   *rate.Limiter
	now       func() time.Time
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different host (testnet, httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a Binance client limited to ~10 requests per second,
// comfortably inside the venue's request weight budget.
func NewClient(apiKey, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Candles fetches up to limit closed klines for symbol at the given
// interval (e.g. "1h"), oldest first.
func (c *Client) Candles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "/api/v3/klines", q, false)
	if err != nil {
		return nil, err
	}

	// Each kline is a heterogeneous array:
	// [openTime, open, high, low, close, volume, closeTime, ...]
	var raw [][]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode klines: %v", ErrDataUnavailable, err)
	}

	candles := make([]market.Candle, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			return nil, fmt.Errorf("%w: short kline row", ErrDataUnavailable)
		}

		ms, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: bad kline open time", ErrDataUnavailable)
		}

		var cd market.Candle
		cd.Time = time.UnixMilli(int64(ms)).UTC()
		for i, dst := range []*float64{&cd.Open, &cd.High, &cd.Low, &cd.Close, &cd.Volume} {
			s, ok := k[i+1].(string)
			if !ok {
				return nil, fmt.Errorf("%w: bad kline field %d", ErrDataUnavailable, i+1)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: parse kline field %d: %v", ErrDataUnavailable, i+1, err)
			}
			*dst = v
		}
		candles = append(candles, cd)
	}
	return candles, nil
}

// Price fetches the last traded price for symbol.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	body, err := c.get(ctx, "/api/v3/ticker/price", q, false)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: decode ticker: %v", ErrDataUnavailable, err)
	}

	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse ticker price: %v", ErrDataUnavailable, err)
	}
	return price, nil
}

// Balance fetches the free balance of asset from the signed account
// endpoint. Used as the pre-flight gate before every iteration.
func (c *Client) Balance(ctx context.Context, asset string) (float64, error) {
	q := url.Values{}
	q.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))

	body, err := c.get(ctx, "/api/v3/account", q, true)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Balances []struct {
			Asset string `json:"asset"`
			Free  string `json:"free"`
		} `json:"balances"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: decode account: %v", ErrDataUnavailable, err)
	}

	for _, b := range resp.Balances {
		if b.Asset != asset {
			continue
		}
		free, err := strconv.ParseFloat(b.Free, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: parse balance: %v", ErrDataUnavailable, err)
		}
		return free, nil
	}
	return 0, fmt.Errorf("%w: no balance entry for %s", ErrDataUnavailable, asset)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, signed bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	query := q.Encode()
	if signed {
		// The signature is computed over the preceding query string and
		// must be the last parameter.
		query += "&signature=" + c.sign(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if signed {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrDataUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrDataUnavailable, path, resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
