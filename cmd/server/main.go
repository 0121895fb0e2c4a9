package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"the-signal/internal/advisor"
	"the-signal/internal/cache"
	"the-signal/internal/config"
	"the-signal/internal/handler"
	"the-signal/internal/job"
	"the-signal/internal/provider"
	"the-signal/internal/service"
	"the-signal/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "the-signal/docs"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	newFetchersFunc = func(tracer trace.Tracer) service.Fetchers {
		llama := provider.NewDefiLlamaProvider(tracer)
		return service.Fetchers{
			FearGreed:    provider.NewFearGreedProvider(tracer),
			GlobalMarket: provider.NewCoinGeckoProvider(tracer),
			DexVolumes:   llama,
			TVL:          llama,
			Yields:       llama,
			Stablecoins:  llama,
			Derivatives:  provider.NewOKXProvider(tracer),
		}
	}
	newSignalServiceFunc   = service.NewSignalService
	newRefreshJobFunc      = job.NewRefreshJob
	startJobFunc           = func(j *job.RefreshJob, ctx context.Context) { go j.Start(ctx) }
	newAdvisorServiceFunc  = advisor.NewAdvisorService
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           The Signal API
// @version         1.0
// @description     Crypto market intelligence: category scores, composite signal and a synthesized market brief.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: it shares computed briefs across replicas.
	redisClient, err := initRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, continuing without brief cache: %v", err)
		redisClient = nil
	}

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	fetchers := newFetchersFunc(tracer)
	memo := cache.NewTTLCache(time.Duration(cfg.CacheTTLSecs)*time.Second, nil)

	var redis service.RedisClient
	if redisClient != nil {
		redis = redisClient
	}
	signalService := newSignalServiceFunc(tracer, fetchers, memo, redis, time.Duration(cfg.BriefCacheSecs)*time.Second)

	refreshJob := newRefreshJobFunc(tracer, signalService, time.Duration(cfg.SignalRefreshSecs)*time.Second)
	startJobFunc(refreshJob, ctx)

	var adv handler.Advisor
	if cfg.OpenAIAPIKey != "" {
		llm := advisor.NewOpenAIClient(cfg.OpenAIAPIKey)
		adv = newAdvisorServiceFunc(tracer, llm, signalService, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}

	h := newHandlerFunc(tracer, signalService, adv)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("the-signal"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
