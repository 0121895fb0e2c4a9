package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"the-signal/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const fearGreedBaseURL = "https://api.alternative.me"

// FearGreedProvider fetches the alternative.me crypto Fear & Greed index.
type FearGreedProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewFearGreedProvider(tracer trace.Tracer) *FearGreedProvider {
	return &FearGreedProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: fearGreedBaseURL,
		tracer:  tracer,
	}
}

// FetchFearGreed returns the latest index value plus a 7-day history,
// oldest point first.
func (p *FearGreedProvider) FetchFearGreed(ctx context.Context) (*domain.FearGreedSnapshot, error) {
	_, span := p.tracer.Start(ctx, "feargreed.fetch")
	defer span.End()

	url := strings.TrimRight(p.baseURL, "/") + "/fng/?limit=7"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unavailable("fear_greed", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, unavailable("fear_greed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, unavailable("fear_greed", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body)))
	}

	var payload struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
			Timestamp      string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, unavailable("fear_greed", fmt.Errorf("decode response: %w", err))
	}
	if len(payload.Data) == 0 {
		return nil, unavailable("fear_greed", fmt.Errorf("response has no rows"))
	}

	latest := payload.Data[0]
	value, err := strconv.Atoi(strings.TrimSpace(latest.Value))
	if err != nil {
		return nil, unavailable("fear_greed", fmt.Errorf("parse value: %w", err))
	}

	// Rows arrive newest-first; the history goes out oldest-first.
	history := make([]domain.FearGreedPoint, 0, len(payload.Data))
	for i := len(payload.Data) - 1; i >= 0; i-- {
		row := payload.Data[i]
		v, err := strconv.Atoi(strings.TrimSpace(row.Value))
		if err != nil {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(row.Timestamp), 10, 64)
		if err != nil {
			continue
		}
		if ts > 1_000_000_000_000 {
			ts = ts / 1000
		}
		history = append(history, domain.FearGreedPoint{
			Value: v,
			Date:  time.Unix(ts, 0).UTC().Format("Jan 2"),
		})
	}

	return &domain.FearGreedSnapshot{
		Value:   value,
		Label:   latest.Classification,
		History: history,
	}, nil
}
