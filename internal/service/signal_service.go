package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"the-signal/internal/brief"
	"the-signal/internal/cache"
	"the-signal/internal/domain"
	"the-signal/internal/signal"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const briefCacheKey = "brief:latest"

// Each provider is consumed through its own single-method interface so
// tests can substitute fakes per source.
type FearGreedFetcher interface {
	FetchFearGreed(ctx context.Context) (*domain.FearGreedSnapshot, error)
}

type GlobalMarketFetcher interface {
	FetchGlobalMarket(ctx context.Context) (*domain.GlobalMarketSnapshot, error)
}

type DexVolumeFetcher interface {
	FetchDexVolumes(ctx context.Context) (*domain.DexVolumeSnapshot, error)
}

type TVLFetcher interface {
	FetchTVL(ctx context.Context) (*domain.TVLSnapshot, error)
}

type YieldFetcher interface {
	FetchYields(ctx context.Context) (*domain.YieldSnapshot, error)
}

type StablecoinFetcher interface {
	FetchStablecoins(ctx context.Context) (*domain.StablecoinSnapshot, error)
}

type DerivativesFetcher interface {
	FetchDerivatives(ctx context.Context) (*domain.DerivativesSnapshot, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Fetchers bundles the seven upstream sources the service polls.
type Fetchers struct {
	FearGreed    FearGreedFetcher
	GlobalMarket GlobalMarketFetcher
	DexVolumes   DexVolumeFetcher
	TVL          TVLFetcher
	Yields       YieldFetcher
	Stablecoins  StablecoinFetcher
	Derivatives  DerivativesFetcher
}

// SignalService orchestrates snapshot collection, scoring and brief
// generation. Snapshots are memoized in the TTL cache; the computed
// brief is additionally cached in Redis when a client is configured.
type SignalService struct {
	tracer   trace.Tracer
	fetchers Fetchers
	memo     *cache.TTLCache
	redis    RedisClient
	briefTTL time.Duration
	now      func() time.Time
}

func NewSignalService(
	tracer trace.Tracer,
	fetchers Fetchers,
	memo *cache.TTLCache,
	redisClient RedisClient,
	briefTTL time.Duration,
) *SignalService {
	return &SignalService{
		tracer:   tracer,
		fetchers: fetchers,
		memo:     memo,
		redis:    redisClient,
		briefTTL: briefTTL,
		now:      time.Now,
	}
}

// FetchMarketData collects all seven snapshots concurrently. Every
// source is attempted; a failure leaves its field nil and is logged,
// never returned. Each fetch goes through the TTL cache so repeated
// calls inside the window hit no upstream.
func (s *SignalService) FetchMarketData(ctx context.Context) domain.MarketData {
	ctx, span := s.tracer.Start(ctx, "signal-service.fetch-market-data")
	defer span.End()

	var data domain.MarketData
	var wg sync.WaitGroup
	wg.Add(7)

	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "fearGreed", s.fetchers.FearGreed.FetchFearGreed)
		if err != nil {
			log.Printf("fear & greed fetch failed: %v", err)
			return
		}
		data.FearGreed = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "globalMarket", s.fetchers.GlobalMarket.FetchGlobalMarket)
		if err != nil {
			log.Printf("global market fetch failed: %v", err)
			return
		}
		data.GlobalMarket = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "dexVolumes", s.fetchers.DexVolumes.FetchDexVolumes)
		if err != nil {
			log.Printf("dex volume fetch failed: %v", err)
			return
		}
		data.DexVolumes = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "tvl", s.fetchers.TVL.FetchTVL)
		if err != nil {
			log.Printf("tvl fetch failed: %v", err)
			return
		}
		data.TVL = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "yields", s.fetchers.Yields.FetchYields)
		if err != nil {
			log.Printf("yields fetch failed: %v", err)
			return
		}
		data.Yields = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "stablecoins", s.fetchers.Stablecoins.FetchStablecoins)
		if err != nil {
			log.Printf("stablecoin fetch failed: %v", err)
			return
		}
		data.Stablecoins = v
	}()
	go func() {
		defer wg.Done()
		v, err := cache.GetOrFetch(ctx, s.memo, "derivatives", s.fetchers.Derivatives.FetchDerivatives)
		if err != nil {
			log.Printf("derivatives fetch failed: %v", err)
			return
		}
		data.Derivatives = v
	}()

	wg.Wait()
	return data
}

// GetSignal returns the full scored payload for whatever data is
// currently available.
func (s *SignalService) GetSignal(ctx context.Context) domain.SignalResult {
	ctx, span := s.tracer.Start(ctx, "signal-service.get-signal")
	defer span.End()

	data := s.FetchMarketData(ctx)
	scores := signal.CalculateScores(data)

	result := domain.SignalResult{
		RawData:           data,
		Scores:            scores,
		CompositeScore:    signal.CompositeScore(scores),
		WeightedComposite: signal.WeightedCompositeScore(scores),
	}
	result.Sentiment = domain.SentimentForScore(result.CompositeScore)
	if data.Derivatives != nil {
		report := signal.AnalyzeDerivatives(*data.Derivatives)
		result.Leverage = &report
	}
	return result
}

// GetBrief returns the current market brief, preferring the Redis copy
// when one is fresh so restarts and replicas share the same text.
func (s *SignalService) GetBrief(ctx context.Context) domain.Brief {
	ctx, span := s.tracer.Start(ctx, "signal-service.get-brief")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getBriefCache(ctx)
		if err != nil {
			log.Printf("redis brief read error: %v", err)
		}
		if cached != nil {
			return *cached
		}
	}

	data := s.FetchMarketData(ctx)
	scores := signal.CalculateScores(data)
	b := brief.Generate(data, scores, s.now())

	if s.redis != nil {
		if err := s.setBriefCache(ctx, b); err != nil {
			log.Printf("redis brief write error: %v", err)
		}
	}
	return b
}

// RefreshSignal forces a fresh fetch-and-score cycle and rewrites the
// cached brief. Used by the background job and the refresh endpoint.
func (s *SignalService) RefreshSignal(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "signal-service.refresh-signal")
	defer span.End()

	data := s.FetchMarketData(ctx)
	scores := signal.CalculateScores(data)
	b := brief.Generate(data, scores, s.now())

	if s.redis != nil {
		if err := s.setBriefCache(ctx, b); err != nil {
			log.Printf("redis brief write error: %v", err)
		}
	}

	log.Printf("Refreshed signal: composite %d (%s), %d categories scored", b.CompositeScore, b.Sentiment, len(scores))
	return nil
}

func (s *SignalService) setBriefCache(ctx context.Context, b domain.Brief) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, briefCacheKey, data, s.briefTTL).Err()
}

func (s *SignalService) getBriefCache(ctx context.Context) (*domain.Brief, error) {
	data, err := s.redis.Get(ctx, briefCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b domain.Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
