package report

import (
	"testing"

	"ewintr.nl/ytdash/model"
	"github.com/stretchr/testify/assert"
)

func video(id, channel string, views, likes, comments uint64, short bool) model.Video {
	return model.Video{
		ID:          model.YoutubeVideoID(id),
		Title:       "title " + id,
		Channel:     channel,
		Views:       views,
		Likes:       likes,
		Comments:    comments,
		IsShortForm: short,
	}
}

var testVideos = []model.Video{
	video("a1", "Alpha", 1000, 50, 50, false),
	video("a2", "Alpha", 200, 20, 0, true),
	video("b1", "Beta", 3000, 30, 0, false),
	video("b2", "Beta", 500, 100, 25, true),
	video("b3", "Beta", 0, 0, 0, true),
}

func TestOverview(t *testing.T) {
	act := NewOverview(testVideos)
	assert.Equal(t, 5, act.TotalVideos)
	assert.Equal(t, 3, act.Shorts)
	assert.Equal(t, 2, act.Regular)
	assert.Equal(t, uint64(4700), act.TotalViews)
	assert.InDelta(t, 940.0, act.AverageViews, 0.001)
	assert.Equal(t, uint64(275), act.TotalEngagement)
	assert.InDelta(t, 275.0/4700*100, act.EngagementRate, 0.001)
	assert.Equal(t, "Beta", act.TopChannel)
	assert.Equal(t, uint64(3500), act.TopChannelViews)

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Overview{}, NewOverview(nil))
	})
}

func TestChannelFormats(t *testing.T) {
	act := ChannelFormats(testVideos, []string{"Alpha", "Gamma", "Beta"})
	assert.Equal(t, []ChannelFormat{
		{Channel: "Beta", ShortsViews: 500, RegularViews: 3000, TotalViews: 3500},
		{Channel: "Alpha", ShortsViews: 200, RegularViews: 1000, TotalViews: 1200},
		{Channel: "Gamma"},
	}, act)

	ft := NewFormatTotals(act)
	assert.Equal(t, uint64(4000), ft.RegularViews)
	assert.Equal(t, uint64(700), ft.ShortsViews)
	assert.InDelta(t, 4000.0/4700*100, ft.RegularShare, 0.001)
	assert.InDelta(t, 700.0/4700*100, ft.ShortsShare, 0.001)
	assert.Equal(t, FormatRegular, ft.Best)
	assert.Equal(t, uint64(3300), ft.Margin)

	t.Run("tie goes to shorts", func(t *testing.T) {
		ft := NewFormatTotals(nil)
		assert.Equal(t, FormatShorts, ft.Best)
		assert.Zero(t, ft.Margin)
		assert.Zero(t, ft.RegularShare)
	})
}

func TestFormatBreakdown(t *testing.T) {
	act := NewFormatBreakdown(testVideos)
	assert.Equal(t, []FormatStat{
		{Channel: "Beta", TotalViews: 3000, AverageViews: 3000, Count: 1},
		{Channel: "Alpha", TotalViews: 1000, AverageViews: 1000, Count: 1},
	}, act.Regular)
	assert.Equal(t, []FormatStat{
		{Channel: "Beta", TotalViews: 500, AverageViews: 250, Count: 2},
		{Channel: "Alpha", TotalViews: 200, AverageViews: 200, Count: 1},
	}, act.Shorts)
}

func TestRanking(t *testing.T) {
	idsOf := func(vs []model.Video) []string {
		res := []string{}
		for _, v := range vs {
			res = append(res, string(v.ID))
		}
		return res
	}

	assert.Equal(t, []string{"b1", "a1", "b2"}, idsOf(Top(testVideos, 3, nil)))
	assert.Equal(t, []string{"b2", "a2"}, idsOf(Top(testVideos, 5, Shorts)[:2]))
	assert.Equal(t, []string{"b1", "a1"}, idsOf(Top(testVideos, 5, Regular)))
	assert.Equal(t, []string{"b3", "a2"}, idsOf(Bottom(testVideos, 2)))
	assert.Equal(t, []string{"b2", "a1", "a2"}, idsOf(TopEngagement(testVideos, 3)))
	assert.Empty(t, Top(nil, 10, nil))
}

func TestBuild(t *testing.T) {
	r := Build(testVideos, []string{"Alpha", "Beta"})
	assert.Len(t, r.TopVideos, 5)
	assert.Len(t, r.TopRegular, 2)
	assert.Len(t, r.TopShorts, 3)
	assert.Equal(t, "https://www.youtube.com/watch?v=b1", r.TopVideos[0].WatchURL)
	assert.Equal(t, "https://img.youtube.com/vi/b1/mqdefault.jpg", r.TopVideos[0].PreviewURL)
	assert.Equal(t, "3.0K", r.TopVideos[0].ViewsLabel)
}

func TestHumanCount(t *testing.T) {
	for _, tc := range []struct {
		n   uint64
		exp string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1.0K"},
		{340_500, "340.5K"},
		{1_234_567, "1.2M"},
	} {
		assert.Equal(t, tc.exp, HumanCount(tc.n))
	}
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "12", Thousands(12))
	assert.Equal(t, "1,234", Thousands(1234))
	assert.Equal(t, "1,234,567", Thousands(1234567))
}
