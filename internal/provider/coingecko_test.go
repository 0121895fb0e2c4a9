package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestCoinGeckoProviderFetchGlobalMarket(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"))
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if !strings.Contains(req.URL.Path, "/global") {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			return jsonResponse(t, map[string]any{
				"data": map[string]any{
					"total_market_cap":                     map[string]float64{"usd": 3_500_000_000_000},
					"total_volume":                         map[string]float64{"usd": 120_000_000_000},
					"market_cap_percentage":                map[string]float64{"btc": 56.2, "eth": 12.8},
					"active_cryptocurrencies":              17342,
					"market_cap_change_percentage_24h_usd": -1.75,
				},
			}), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	snap, err := provider.FetchGlobalMarket(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalMarketCap != 3_500_000_000_000 {
		t.Fatalf("unexpected market cap: %f", snap.TotalMarketCap)
	}
	if snap.BTCDominance != 56.2 || snap.ETHDominance != 12.8 {
		t.Fatalf("unexpected dominance: %+v", snap)
	}
	if snap.ActiveCryptos != 17342 {
		t.Fatalf("unexpected active cryptos: %d", snap.ActiveCryptos)
	}
	if snap.MarketCapChange24h != -1.75 {
		t.Fatalf("unexpected 24h change: %f", snap.MarketCapChange24h)
	}
}

func TestCoinGeckoProviderFetchGlobalMarketAPIError(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"))
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(bytes.NewReader([]byte("rate limited"))),
				Header:     make(http.Header),
			}, nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	_, err := provider.FetchGlobalMarket(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRateLimiterRefill(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(2, 10*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error on burst token %d: %v", i, err)
		}
	}

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("unexpected error waiting for refill: %v", err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Fatalf("third token granted without refill delay")
	}
}

func TestRateLimiterContextCancel(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1, time.Hour)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected context error, got nil")
	}
}
