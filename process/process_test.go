package process

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ewintr.nl/ytdash/model"
	"ewintr.nl/ytdash/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	text    string
	err     error
	prompts []string
}

func (fs *fakeSummarizer) Name() string { return "fake" }

func (fs *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	fs.prompts = append(fs.prompts, prompt)
	return fs.text, fs.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVideos() []model.Video {
	return []model.Video{
		{ID: "a", Title: "Big Debate", Channel: "Ben Shapiro", Views: 1_250_000, Likes: 50_000, Comments: 2_000},
		{ID: "b", Title: "Quiet Monday", Channel: "Matt Walsh", Views: 900, Likes: 90, Comments: 9},
	}
}

func TestInsightsGenerate(t *testing.T) {
	dashboard := model.DefaultDashboards()[model.DashboardPolitical]

	t.Run("success", func(t *testing.T) {
		sum := &fakeSummarizer{text: "1. WINNING TOPICS ..."}
		repo := storage.NewMemory()
		ins := NewInsights(sum, 0, repo, testLogger())
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ins.now = func() time.Time { return now }

		act := ins.Generate(context.Background(), dashboard, 7, []string{"Ben Shapiro", "Matt Walsh"}, testVideos())
		assert.True(t, act.Available)
		assert.Equal(t, "1. WINNING TOPICS ...", act.Text)
		assert.Equal(t, "fake", act.Provider)
		assert.Equal(t, "political", act.Dashboard)
		assert.Equal(t, now, act.CreatedAt)
		require.Len(t, sum.prompts, 1)

		history, err := ins.History(context.Background(), "political", 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, act.ID, history[0].ID)
	})

	for _, tc := range []struct {
		name    string
		sum     Summarizer
		videos  []model.Video
		expText string
	}{
		{
			name:    "summarizer fails",
			sum:     &fakeSummarizer{err: errors.New("401 unauthorized")},
			videos:  testVideos(),
			expText: "AI analysis temporarily unavailable: 401 unauthorized",
		},
		{
			name:    "empty output",
			sum:     &fakeSummarizer{},
			videos:  testVideos(),
			expText: Unavailable(ErrEmptyOutput),
		},
		{
			name:    "disabled",
			videos:  testVideos(),
			expText: Unavailable(ErrNoSummarizer),
		},
		{
			name:    "no videos",
			sum:     &fakeSummarizer{text: "never"},
			expText: Unavailable(ErrNoVideos),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := storage.NewMemory()
			ins := NewInsights(tc.sum, 0, repo, testLogger())

			act := ins.Generate(context.Background(), dashboard, 7, nil, tc.videos)
			assert.False(t, act.Available)
			assert.Equal(t, tc.expText, act.Text)

			history, err := ins.History(context.Background(), "", 10)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}

	t.Run("rate limited and cancelled", func(t *testing.T) {
		sum := &fakeSummarizer{text: "ok"}
		ins := NewInsights(sum, 1, nil, testLogger())

		first := ins.Generate(context.Background(), dashboard, 7, nil, testVideos())
		assert.True(t, first.Available)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		second := ins.Generate(ctx, dashboard, 7, nil, testVideos())
		assert.False(t, second.Available)
		assert.True(t, strings.HasPrefix(second.Text, unavailablePrefix))
		assert.Len(t, sum.prompts, 1)
	})
}

func TestBuildPrompt(t *testing.T) {
	sports := model.DefaultDashboards()[model.DashboardSports]
	act := BuildPrompt(sports, testVideos())

	assert.Contains(t, act, "sports and college football commentary channels")
	assert.Contains(t, act, "- Big Debate (1,250,000 views, Ben Shapiro)")
	assert.Contains(t, act, "- Quiet Monday (900 views, Matt Walsh)")
	assert.Contains(t, act, "- Quiet Monday (11.0% engagement, 900 views)")
	assert.Contains(t, act, "- Big Debate (4.2% engagement, 1,250,000 views)")

	top := act[strings.Index(act, "TOP 10"):strings.Index(act, "BOTTOM 10")]
	assert.Less(t, strings.Index(top, "Big Debate"), strings.Index(top, "Quiet Monday"))
	bottom := act[strings.Index(act, "BOTTOM 10"):strings.Index(act, "HIGHEST ENGAGEMENT")]
	assert.Less(t, strings.Index(bottom, "Quiet Monday"), strings.Index(bottom, "Big Debate"))
}
