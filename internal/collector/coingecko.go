package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"VolProfiler/internal/model"
)

const defaultCoinGeckoBase = "https://api.coingecko.com"

// CoinGeckoFetcher implements Fetcher using the CoinGecko market_chart API.
// With no base URL it talks to the public endpoint; a configured base URL
// plus API key targets the pro endpoint (or a self-hosted proxy).
type CoinGeckoFetcher struct {
	BaseURL  string
	APIKey   string
	Asset    string // CoinGecko coin id, e.g. "bitcoin"
	Currency string // quote currency, e.g. "usd"
	Client   *http.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, asset, currency, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultCoinGeckoBase
	}
	return &CoinGeckoFetcher{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Asset:    asset,
		Currency: currency,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response structure from the market_chart/range API.
type marketChart struct {
	Prices [][2]float64 `json:"prices"` // [[ts_ms, price], ...]
}

func (f *CoinGeckoFetcher) FetchPrices(ctx context.Context, from, to time.Time) ([]model.PriceObservation, error) {
	u := fmt.Sprintf("%s/api/v3/coins/%s/market_chart/range?vs_currency=%s&from=%d&to=%d",
		f.BaseURL, url.PathEscape(f.Asset), url.QueryEscape(f.Currency), from.Unix(), to.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-pro-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}

	obs := make([]model.PriceObservation, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		obs = append(obs, model.PriceObservation{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}
	return obs, nil
}
