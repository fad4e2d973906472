package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ewintr.nl/ytdash/model"
	"ewintr.nl/ytdash/storage"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const unavailablePrefix = "AI analysis temporarily unavailable: "

var (
	ErrNoSummarizer = errors.New("no summarizer configured")
	ErrNoVideos     = errors.New("no videos to analyze")
	ErrEmptyOutput  = errors.New("summarizer returned no text")
)

type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Insights turns a video collection into a strategic insights report. It
// never fails: any problem ends up in the report text.
type Insights struct {
	summarizer Summarizer
	limiter    *rate.Limiter
	repo       storage.InsightRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewInsights creates the service. summarizer may be nil, in which case all
// reports are placeholders. requestsPerMinute <= 0 disables throttling.
func NewInsights(summarizer Summarizer, requestsPerMinute int, repo storage.InsightRepository, logger *slog.Logger) *Insights {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60)
	}
	return &Insights{
		summarizer: summarizer,
		limiter:    rate.NewLimiter(limit, 1),
		repo:       repo,
		now:        time.Now,
		logger:     logger,
	}
}

func (i *Insights) Enabled() bool {
	return i.summarizer != nil
}

func (i *Insights) Generate(ctx context.Context, dashboard model.Dashboard, days int, channels []string, videos []model.Video) *model.InsightReport {
	report := &model.InsightReport{
		ID:        uuid.New(),
		Dashboard: string(dashboard.Name),
		Days:      days,
		Channels:  channels,
		CreatedAt: i.now().UTC(),
	}

	text, err := i.summarize(ctx, dashboard, videos)
	if err != nil {
		i.logger.Error("failed to generate insights", slog.String("dashboard", report.Dashboard), slog.String("error", err.Error()))
		report.Text = Unavailable(err)
	} else {
		report.Text = text
		report.Available = true
	}
	if i.summarizer != nil {
		report.Provider = i.summarizer.Name()
	}

	if i.repo != nil && report.Available {
		if err := i.repo.Save(ctx, report); err != nil {
			i.logger.Error("failed to save insights", slog.String("id", report.ID.String()), slog.String("error", err.Error()))
		}
	}

	return report
}

func (i *Insights) History(ctx context.Context, dashboard string, limit int) ([]*model.InsightReport, error) {
	if i.repo == nil {
		return []*model.InsightReport{}, nil
	}
	return i.repo.Latest(ctx, dashboard, limit)
}

func (i *Insights) summarize(ctx context.Context, dashboard model.Dashboard, videos []model.Video) (string, error) {
	if i.summarizer == nil {
		return "", ErrNoSummarizer
	}
	if len(videos) == 0 {
		return "", ErrNoVideos
	}
	if err := i.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	i.logger.Info("generating insights", slog.String("dashboard", string(dashboard.Name)), slog.String("summarizer", i.summarizer.Name()), slog.Int("videos", len(videos)))
	text, err := i.summarizer.Summarize(ctx, BuildPrompt(dashboard, videos))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyOutput
	}

	return text, nil
}

func Unavailable(err error) string {
	return unavailablePrefix + err.Error()
}
