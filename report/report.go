package report

import (
	"sort"

	"ewintr.nl/ytdash/model"
)

const (
	FormatRegular = "Regular Videos"
	FormatShorts  = "Shorts"
)

type Overview struct {
	TotalVideos     int     `json:"total_videos"`
	Shorts          int     `json:"shorts"`
	Regular         int     `json:"regular"`
	TotalViews      uint64  `json:"total_views"`
	AverageViews    float64 `json:"average_views"`
	TotalEngagement uint64  `json:"total_engagement"`
	EngagementRate  float64 `json:"engagement_rate"`
	TopChannel      string  `json:"top_channel"`
	TopChannelViews uint64  `json:"top_channel_views"`
}

type ChannelFormat struct {
	Channel      string `json:"channel"`
	ShortsViews  uint64 `json:"shorts_views"`
	RegularViews uint64 `json:"regular_views"`
	TotalViews   uint64 `json:"total_views"`
}

type FormatTotals struct {
	RegularViews uint64  `json:"regular_views"`
	ShortsViews  uint64  `json:"shorts_views"`
	RegularShare float64 `json:"regular_share"`
	ShortsShare  float64 `json:"shorts_share"`
	Best         string  `json:"best"`
	Margin       uint64  `json:"margin"`
}

type FormatStat struct {
	Channel      string  `json:"channel"`
	TotalViews   uint64  `json:"total_views"`
	AverageViews float64 `json:"average_views"`
	Count        int     `json:"count"`
}

type FormatBreakdown struct {
	Regular []FormatStat `json:"regular"`
	Shorts  []FormatStat `json:"shorts"`
}

type Row struct {
	model.Video
	WatchURL       string  `json:"watch_url"`
	PreviewURL     string  `json:"preview_url"`
	EngagementRate float64 `json:"engagement_rate"`
	ViewsLabel     string  `json:"views_label"`
}

type Report struct {
	Overview   Overview        `json:"overview"`
	Channels   []ChannelFormat `json:"channels"`
	Formats    FormatTotals    `json:"formats"`
	Breakdown  FormatBreakdown `json:"breakdown"`
	TopVideos  []Row           `json:"top_videos"`
	TopRegular []Row           `json:"top_regular"`
	TopShorts  []Row           `json:"top_shorts"`
}

// Build computes all figures for videos. channels lists the selection so
// channels without any videos still show up with zero views.
func Build(videos []model.Video, channels []string) Report {
	cf := ChannelFormats(videos, channels)
	return Report{
		Overview:   NewOverview(videos),
		Channels:   cf,
		Formats:    NewFormatTotals(cf),
		Breakdown:  NewFormatBreakdown(videos),
		TopVideos:  Rows(Top(videos, 10, nil)),
		TopRegular: Rows(Top(videos, 5, Regular)),
		TopShorts:  Rows(Top(videos, 5, Shorts)),
	}
}

func NewOverview(videos []model.Video) Overview {
	o := Overview{TotalVideos: len(videos)}
	perChannel := map[string]uint64{}
	for _, v := range videos {
		if v.IsShortForm {
			o.Shorts++
		} else {
			o.Regular++
		}
		o.TotalViews += v.Views
		o.TotalEngagement += v.Likes + v.Comments
		perChannel[v.Channel] += v.Views
	}
	if len(videos) > 0 {
		o.AverageViews = float64(o.TotalViews) / float64(len(videos))
	}
	if o.TotalViews > 0 {
		o.EngagementRate = float64(o.TotalEngagement) / float64(o.TotalViews) * 100
	}

	names := make([]string, 0, len(perChannel))
	for name := range perChannel {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if o.TopChannel == "" || perChannel[name] > o.TopChannelViews {
			o.TopChannel = name
			o.TopChannelViews = perChannel[name]
		}
	}

	return o
}

// ChannelFormats splits views per channel into shorts and regular videos,
// sorted by total views, highest first.
func ChannelFormats(videos []model.Video, channels []string) []ChannelFormat {
	idx := map[string]int{}
	res := make([]ChannelFormat, 0, len(channels))
	for _, name := range channels {
		if _, ok := idx[name]; ok {
			continue
		}
		idx[name] = len(res)
		res = append(res, ChannelFormat{Channel: name})
	}
	for _, v := range videos {
		i, ok := idx[v.Channel]
		if !ok {
			idx[v.Channel] = len(res)
			i = len(res)
			res = append(res, ChannelFormat{Channel: v.Channel})
		}
		if v.IsShortForm {
			res[i].ShortsViews += v.Views
		} else {
			res[i].RegularViews += v.Views
		}
		res[i].TotalViews += v.Views
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].TotalViews > res[j].TotalViews
	})

	return res
}

func NewFormatTotals(channels []ChannelFormat) FormatTotals {
	ft := FormatTotals{}
	for _, c := range channels {
		ft.RegularViews += c.RegularViews
		ft.ShortsViews += c.ShortsViews
	}
	if all := ft.RegularViews + ft.ShortsViews; all > 0 {
		ft.RegularShare = float64(ft.RegularViews) / float64(all) * 100
		ft.ShortsShare = float64(ft.ShortsViews) / float64(all) * 100
	}
	if ft.RegularViews > ft.ShortsViews {
		ft.Best = FormatRegular
		ft.Margin = ft.RegularViews - ft.ShortsViews
	} else {
		ft.Best = FormatShorts
		ft.Margin = ft.ShortsViews - ft.RegularViews
	}

	return ft
}

func NewFormatBreakdown(videos []model.Video) FormatBreakdown {
	return FormatBreakdown{
		Regular: formatStats(videos, Regular),
		Shorts:  formatStats(videos, Shorts),
	}
}

func formatStats(videos []model.Video, keep Filter) []FormatStat {
	idx := map[string]int{}
	res := []FormatStat{}
	for _, v := range videos {
		if !keep(v) {
			continue
		}
		i, ok := idx[v.Channel]
		if !ok {
			i = len(res)
			idx[v.Channel] = i
			res = append(res, FormatStat{Channel: v.Channel})
		}
		res[i].TotalViews += v.Views
		res[i].Count++
	}
	for i := range res {
		res[i].AverageViews = float64(res[i].TotalViews) / float64(res[i].Count)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].TotalViews > res[j].TotalViews
	})

	return res
}

func Rows(videos []model.Video) []Row {
	rows := make([]Row, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, Row{
			Video:          v,
			WatchURL:       v.WatchURL(),
			PreviewURL:     PreviewURL(v.ID),
			EngagementRate: v.EngagementRate(),
			ViewsLabel:     HumanCount(v.Views),
		})
	}
	return rows
}
