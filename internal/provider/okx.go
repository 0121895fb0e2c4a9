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

const okxBaseURL = "https://www.okx.com"

// okxAltInstruments is the fixed list of secondary perp contracts whose
// funding and open interest round out the derivatives snapshot.
var okxAltInstruments = []string{
	"SOL-USDT-SWAP",
	"DOGE-USDT-SWAP",
	"XRP-USDT-SWAP",
	"AVAX-USDT-SWAP",
	"LINK-USDT-SWAP",
	"ARB-USDT-SWAP",
}

// OKXProvider fetches derivatives-market data (funding rates, open
// interest, long/short positioning, taker flow) from OKX public endpoints.
// Individual endpoint failures zero-fill the affected field; the fetch
// errors only when the primary BTC asset yields no data at all.
type OKXProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewOKXProvider(tracer trace.Tracer) *OKXProvider {
	return &OKXProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: okxBaseURL,
		tracer:  tracer,
	}
}

func (p *OKXProvider) FetchDerivatives(ctx context.Context) (*domain.DerivativesSnapshot, error) {
	_, span := p.tracer.Start(ctx, "okx.fetch-derivatives")
	defer span.End()

	btc, ok := p.fetchAsset(ctx, "BTC", "BTC-USDT-SWAP")
	if !ok {
		return nil, unavailable("derivatives", fmt.Errorf("no BTC derivatives data"))
	}
	eth, _ := p.fetchAsset(ctx, "ETH", "ETH-USDT-SWAP")

	topCoins := make([]domain.AltFunding, 0, len(okxAltInstruments))
	for _, instID := range okxAltInstruments {
		ccy := strings.SplitN(instID, "-", 2)[0]
		funding, fundingOK := p.fetchFundingRate(ctx, instID)
		oi, _, oiOK := p.fetchOpenInterestVolume(ctx, ccy)
		if !fundingOK && !oiOK {
			continue
		}
		topCoins = append(topCoins, domain.AltFunding{
			Symbol:       ccy,
			FundingRate:  funding,
			OpenInterest: oi,
		})
	}

	return &domain.DerivativesSnapshot{BTC: btc, ETH: eth, TopCoins: topCoins}, nil
}

// fetchAsset gathers one asset's four derivatives endpoints. The boolean
// reports whether any of them produced data.
func (p *OKXProvider) fetchAsset(ctx context.Context, ccy, instID string) (domain.AssetDerivatives, bool) {
	var asset domain.AssetDerivatives
	any := false

	if funding, ok := p.fetchFundingRate(ctx, instID); ok {
		asset.FundingRate = funding
		any = true
	}
	if oi, vol, ok := p.fetchOpenInterestVolume(ctx, ccy); ok {
		asset.OpenInterest = oi
		asset.Volume24h = vol
		any = true
	}
	if ratios, ok := p.fetchLongShortRatios(ctx, ccy); ok {
		asset.LongShortRatio = ratios
		any = true
	}
	if buy, sell, ok := p.fetchTakerVolume(ctx, ccy); ok {
		asset.TakerBuyVol = buy
		asset.TakerSellVol = sell
		any = true
	}

	asset.TakerRatio = 1
	if asset.TakerSellVol > 0 {
		asset.TakerRatio = asset.TakerBuyVol / asset.TakerSellVol
	}
	return asset, any
}

// fetchFundingRate returns the current funding rate in percent.
func (p *OKXProvider) fetchFundingRate(ctx context.Context, instID string) (float64, bool) {
	var payload struct {
		Data []struct {
			FundingRate string `json:"fundingRate"`
		} `json:"data"`
	}
	if err := p.getJSON(ctx, "/api/v5/public/funding-rate?instId="+instID, &payload); err != nil {
		return 0, false
	}
	if len(payload.Data) == 0 {
		return 0, false
	}
	rate, err := strconv.ParseFloat(payload.Data[0].FundingRate, 64)
	if err != nil {
		return 0, false
	}
	return rate * 100, true
}

// fetchOpenInterestVolume returns open interest and 24h volume in USD.
// Rows are [timestamp, oi, volume] string triples.
func (p *OKXProvider) fetchOpenInterestVolume(ctx context.Context, ccy string) (oi, volume float64, ok bool) {
	var payload struct {
		Data [][]string `json:"data"`
	}
	path := "/api/v5/rubik/stat/contracts/open-interest-volume?ccy=" + ccy + "&period=1D"
	if err := p.getJSON(ctx, path, &payload); err != nil {
		return 0, 0, false
	}
	if len(payload.Data) == 0 || len(payload.Data[0]) < 3 {
		return 0, 0, false
	}
	oi, _ = strconv.ParseFloat(payload.Data[0][1], 64)
	volume, _ = strconv.ParseFloat(payload.Data[0][2], 64)
	return oi, volume, true
}

// fetchLongShortRatios returns up to 24 hourly long/short account ratios,
// most recent last.
func (p *OKXProvider) fetchLongShortRatios(ctx context.Context, ccy string) ([]float64, bool) {
	var payload struct {
		Data [][]string `json:"data"`
	}
	path := "/api/v5/rubik/stat/contracts/long-short-account-ratio?ccy=" + ccy + "&period=1H"
	if err := p.getJSON(ctx, path, &payload); err != nil {
		return nil, false
	}

	rows := payload.Data
	if len(rows) > 24 {
		rows = rows[:24]
	}
	ratios := make([]float64, 0, len(rows))
	// Rows arrive newest-first.
	for i := len(rows) - 1; i >= 0; i-- {
		if len(rows[i]) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(rows[i][1], 64); err == nil {
			ratios = append(ratios, v)
		}
	}
	return ratios, len(ratios) > 0
}

func (p *OKXProvider) fetchTakerVolume(ctx context.Context, ccy string) (buy, sell float64, ok bool) {
	var payload struct {
		Data [][]string `json:"data"`
	}
	path := "/api/v5/rubik/stat/taker-volume?ccy=" + ccy + "&instType=CONTRACTS&period=1H"
	if err := p.getJSON(ctx, path, &payload); err != nil {
		return 0, 0, false
	}
	if len(payload.Data) == 0 || len(payload.Data[0]) < 3 {
		return 0, 0, false
	}
	buy, _ = strconv.ParseFloat(payload.Data[0][1], 64)
	sell, _ = strconv.ParseFloat(payload.Data[0][2], 64)
	return buy, sell, true
}

func (p *OKXProvider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("okx API error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
