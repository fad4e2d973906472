package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ewintr.nl/ytdash/cache"
	"ewintr.nl/ytdash/config"
	"ewintr.nl/ytdash/fetch"
	"ewintr.nl/ytdash/handler"
	"ewintr.nl/ytdash/model"
	"ewintr.nl/ytdash/process"
	"ewintr.nl/ytdash/storage"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, using memory cache only", slog.String("error", err.Error()))
	}
	if rdb != nil {
		defer rdb.Close()
	}
	resultCache := cache.NewTiered(rdb, cfg.CacheTTL, cfg.CacheMaxEntries, logger)

	var ytOpts []option.ClientOption
	if cfg.YoutubeEndpoint != "" {
		ytOpts = append(ytOpts, option.WithEndpoint(cfg.YoutubeEndpoint))
	}
	pool := fetch.NewCredentialPool(cfg.YoutubeAPIKeys...)
	if pool.Len() == 0 {
		logger.Warn("no youtube api keys configured, fetching is disabled")
	}
	dashboards := model.DefaultDashboards()
	fetcher := fetch.NewChannelFetcher(pool, fetch.NewYoutubeFactory(ytOpts...), logger)
	aggregator := fetch.NewAggregator(fetcher, dashboards, resultCache, fetch.ConstantDelay(cfg.ChannelDelay), logger)

	var insightRepo storage.InsightRepository = storage.NewMemory()
	if cfg.PostgresDSN != "" {
		postgres, err := storage.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer postgres.Close()
		insightRepo = storage.NewPostgresInsightRepository(postgres)
	}

	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		logger.Error("unable to create summarizer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := summarizer.(io.Closer); ok {
		defer closer.Close()
	}
	if summarizer == nil {
		logger.Warn("no summarizer api key configured, insights are disabled", slog.String("provider", cfg.SummaryProvider))
	}
	insights := process.NewInsights(summarizer, cfg.SummaryRequestsPerMinute, insightRepo, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.NewServer(aggregator, insights, dashboards, 100, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
			stop()
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.Port), slog.Int("youtubekeys", pool.Len()))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("service stopped")
}

func newSummarizer(ctx context.Context, cfg *config.Config) (process.Summarizer, error) {
	key := cfg.SummarizerKey()
	if key == "" {
		return nil, nil
	}

	switch cfg.SummaryProvider {
	case "gemini":
		gemini, err := process.NewGeminiSummarizer(ctx, process.GeminiConfig{
			APIKey:      key,
			Model:       cfg.GeminiModel,
			MaxTokens:   cfg.SummaryMaxTokens,
			Temperature: cfg.SummaryTemperature,
		})
		if err != nil {
			return nil, err
		}
		return gemini, nil
	default:
		return process.NewOpenAISummarizer(openai.NewClient(key), process.OpenAIConfig{
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.SummaryMaxTokens,
			Temperature: cfg.SummaryTemperature,
		}), nil
	}
}
