package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"time"

	"the-signal/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	llamaBaseURL       = "https://api.llama.fi"
	llamaYieldsBaseURL = "https://yields.llama.fi"
	llamaStablesURL    = "https://stablecoins.llama.fi"
)

var stableSymbolRe = regexp.MustCompile(`(?i)USDC|USDT|DAI`)

// DefiLlamaProvider fetches DEX volumes, TVL, yield pools and stablecoin
// supply from the DeFi Llama family of free APIs.
type DefiLlamaProvider struct {
	client     *http.Client
	baseURL    string
	yieldsURL  string
	stablesURL string
	tracer     trace.Tracer
}

func NewDefiLlamaProvider(tracer trace.Tracer) *DefiLlamaProvider {
	return &DefiLlamaProvider{
		client:     &http.Client{Timeout: 30 * time.Second},
		baseURL:    llamaBaseURL,
		yieldsURL:  llamaYieldsBaseURL,
		stablesURL: llamaStablesURL,
		tracer:     tracer,
	}
}

// FetchDexVolumes fetches aggregate DEX volume plus a per-chain breakdown.
// A protocol's 24h volume is split evenly across the chains it runs on.
func (p *DefiLlamaProvider) FetchDexVolumes(ctx context.Context) (*domain.DexVolumeSnapshot, error) {
	_, span := p.tracer.Start(ctx, "defillama.fetch-dex-volumes")
	defer span.End()

	body, err := p.doRequest(ctx, p.baseURL+"/overview/dexs")
	if err != nil {
		return nil, unavailable("dex_volumes", err)
	}

	var payload struct {
		Total24h  float64 `json:"total24h"`
		Change1d  float64 `json:"change_1d"`
		Change7d  float64 `json:"change_7d"`
		Change1m  float64 `json:"change_1m"`
		Protocols []struct {
			Total24h float64  `json:"total24h"`
			Chains   []string `json:"chains"`
		} `json:"protocols"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, unavailable("dex_volumes", fmt.Errorf("parse response: %w", err))
	}

	chainVolumes := make(map[string]float64)
	for _, proto := range payload.Protocols {
		if len(proto.Chains) == 0 {
			continue
		}
		share := proto.Total24h / float64(len(proto.Chains))
		for _, chain := range proto.Chains {
			chainVolumes[chain] += share
		}
	}

	topChains := make([]domain.ChainVolume, 0, len(chainVolumes))
	for name, volume := range chainVolumes {
		topChains = append(topChains, domain.ChainVolume{Name: name, Volume: volume})
	}
	sort.Slice(topChains, func(i, j int) bool {
		if topChains[i].Volume != topChains[j].Volume {
			return topChains[i].Volume > topChains[j].Volume
		}
		return topChains[i].Name < topChains[j].Name
	})
	if len(topChains) > 6 {
		topChains = topChains[:6]
	}

	return &domain.DexVolumeSnapshot{
		Total24h:  payload.Total24h,
		Change24h: payload.Change1d,
		Change7d:  payload.Change7d,
		Change30d: payload.Change1m,
		TopChains: topChains,
	}, nil
}

// FetchTVL fetches the historical chain TVL series and derives the 7-day
// change from the last 30 daily points.
func (p *DefiLlamaProvider) FetchTVL(ctx context.Context) (*domain.TVLSnapshot, error) {
	_, span := p.tracer.Start(ctx, "defillama.fetch-tvl")
	defer span.End()

	body, err := p.doRequest(ctx, p.baseURL+"/v2/historicalChainTvl")
	if err != nil {
		return nil, unavailable("tvl", err)
	}

	var points []struct {
		Date int64   `json:"date"`
		TVL  float64 `json:"tvl"`
	}
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, unavailable("tvl", fmt.Errorf("parse response: %w", err))
	}
	if len(points) == 0 {
		return nil, unavailable("tvl", fmt.Errorf("empty TVL series"))
	}

	recent := points
	if len(recent) > 30 {
		recent = recent[len(recent)-30:]
	}

	current := recent[len(recent)-1].TVL
	weekAgo := current
	if len(recent) >= 8 {
		weekAgo = recent[len(recent)-8].TVL
	}
	change7d := 0.0
	if weekAgo != 0 {
		change7d = (current - weekAgo) / weekAgo * 100
	}

	history := make([]domain.TVLPoint, 0, len(recent))
	for _, pt := range recent {
		history = append(history, domain.TVLPoint{
			Date: time.Unix(pt.Date, 0).UTC().Format("Jan 2"),
			TVL:  pt.TVL,
		})
	}

	return &domain.TVLSnapshot{
		TotalTVL: current,
		Change7d: change7d,
		History:  history,
	}, nil
}

// FetchYields fetches yield pools and splits them into top stable pools
// (USDC/USDT/DAI, TVL > $10M, positive APY) and top volatile pools
// (TVL > $5M, APY > 10%), each sorted by APY and capped at five.
func (p *DefiLlamaProvider) FetchYields(ctx context.Context) (*domain.YieldSnapshot, error) {
	_, span := p.tracer.Start(ctx, "defillama.fetch-yields")
	defer span.End()

	body, err := p.doRequest(ctx, p.yieldsURL+"/pools")
	if err != nil {
		return nil, unavailable("yields", err)
	}

	var payload struct {
		Data []struct {
			Project string  `json:"project"`
			Symbol  string  `json:"symbol"`
			Chain   string  `json:"chain"`
			APY     float64 `json:"apy"`
			TVLUsd  float64 `json:"tvlUsd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, unavailable("yields", fmt.Errorf("parse response: %w", err))
	}

	var stables, volatiles []domain.YieldPool
	for _, pool := range payload.Data {
		converted := domain.YieldPool{
			Project: pool.Project,
			Symbol:  pool.Symbol,
			Chain:   pool.Chain,
			APY:     pool.APY,
			TVL:     pool.TVLUsd,
		}
		switch {
		case pool.Symbol != "" && stableSymbolRe.MatchString(pool.Symbol) && pool.TVLUsd > 10_000_000 && pool.APY > 0:
			stables = append(stables, converted)
		case !stableSymbolRe.MatchString(pool.Symbol) && pool.TVLUsd > 5_000_000 && pool.APY > 10:
			volatiles = append(volatiles, converted)
		}
	}

	byAPYDesc := func(pools []domain.YieldPool) {
		sort.SliceStable(pools, func(i, j int) bool { return pools[i].APY > pools[j].APY })
	}
	byAPYDesc(stables)
	byAPYDesc(volatiles)
	if len(stables) > 5 {
		stables = stables[:5]
	}
	if len(volatiles) > 5 {
		volatiles = volatiles[:5]
	}

	return &domain.YieldSnapshot{StableYields: stables, VolatileYields: volatiles}, nil
}

// FetchStablecoins fetches pegged-asset supply. Totals and the aggregate
// 24h change are computed over the top five assets by circulating USD.
func (p *DefiLlamaProvider) FetchStablecoins(ctx context.Context) (*domain.StablecoinSnapshot, error) {
	_, span := p.tracer.Start(ctx, "defillama.fetch-stablecoins")
	defer span.End()

	body, err := p.doRequest(ctx, p.stablesURL+"/stablecoins?includePrices=false")
	if err != nil {
		return nil, unavailable("stablecoins", err)
	}

	var payload struct {
		PeggedAssets []struct {
			Name        string `json:"name"`
			Symbol      string `json:"symbol"`
			Circulating struct {
				PeggedUSD float64 `json:"peggedUSD"`
			} `json:"circulating"`
			CirculatingPrevDay struct {
				PeggedUSD float64 `json:"peggedUSD"`
			} `json:"circulatingPrevDay"`
		} `json:"peggedAssets"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, unavailable("stablecoins", fmt.Errorf("parse response: %w", err))
	}

	assets := payload.PeggedAssets
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].Circulating.PeggedUSD > assets[j].Circulating.PeggedUSD
	})

	var totalCirculating, totalPrevDay float64
	top5 := make([]domain.StablecoinAsset, 0, 5)
	for _, asset := range assets {
		if asset.Circulating.PeggedUSD <= 0 {
			continue
		}
		if len(top5) == 5 {
			break
		}
		prev := asset.CirculatingPrevDay.PeggedUSD
		if prev == 0 {
			prev = asset.Circulating.PeggedUSD
		}
		totalCirculating += asset.Circulating.PeggedUSD
		totalPrevDay += prev

		change := 0.0
		if asset.CirculatingPrevDay.PeggedUSD > 0 {
			change = (asset.Circulating.PeggedUSD - asset.CirculatingPrevDay.PeggedUSD) / asset.CirculatingPrevDay.PeggedUSD * 100
		}
		top5 = append(top5, domain.StablecoinAsset{
			Name:        asset.Name,
			Symbol:      asset.Symbol,
			Circulating: asset.Circulating.PeggedUSD,
			Change24h:   change,
		})
	}

	change24h := 0.0
	if totalPrevDay > 0 {
		change24h = (totalCirculating - totalPrevDay) / totalPrevDay * 100
	}

	return &domain.StablecoinSnapshot{
		TotalCirculating: totalCirculating,
		Change24h:        change24h,
		Top5:             top5,
	}, nil
}

func (p *DefiLlamaProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
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
		return nil, fmt.Errorf("defillama API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
