package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"the-signal/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider fetches global market statistics from the CoinGecko
// free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a new provider with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchGlobalMarket fetches aggregate market cap, volume and dominance data.
func (p *CoinGeckoProvider) FetchGlobalMarket(ctx context.Context) (*domain.GlobalMarketSnapshot, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-global")
	defer span.End()

	body, err := p.doRequest(ctx, p.baseURL+"/global")
	if err != nil {
		return nil, unavailable("global_market", err)
	}

	var payload struct {
		Data struct {
			TotalMarketCap       map[string]float64 `json:"total_market_cap"`
			TotalVolume          map[string]float64 `json:"total_volume"`
			MarketCapPercentage  map[string]float64 `json:"market_cap_percentage"`
			ActiveCryptos        int                `json:"active_cryptocurrencies"`
			MarketCapChange24USD float64            `json:"market_cap_change_percentage_24h_usd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, unavailable("global_market", fmt.Errorf("parse response: %w", err))
	}

	return &domain.GlobalMarketSnapshot{
		TotalMarketCap:     payload.Data.TotalMarketCap["usd"],
		TotalVolume24h:     payload.Data.TotalVolume["usd"],
		BTCDominance:       payload.Data.MarketCapPercentage["btc"],
		ETHDominance:       payload.Data.MarketCapPercentage["eth"],
		ActiveCryptos:      payload.Data.ActiveCryptos,
		MarketCapChange24h: payload.Data.MarketCapChange24USD,
	}, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
