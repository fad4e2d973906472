package report

import (
	"fmt"
	"sort"
	"strconv"

	"ewintr.nl/ytdash/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

type Filter func(model.Video) bool

func Shorts(v model.Video) bool  { return v.IsShortForm }
func Regular(v model.Video) bool { return !v.IsShortForm }

// Top returns at most n videos with the most views. Ties keep their
// original order. A nil filter keeps everything.
func Top(videos []model.Video, n int, keep Filter) []model.Video {
	return rank(videos, n, keep, func(a, b model.Video) bool { return a.Views > b.Views })
}

// Bottom returns at most n videos with the fewest views.
func Bottom(videos []model.Video, n int) []model.Video {
	return rank(videos, n, nil, func(a, b model.Video) bool { return a.Views < b.Views })
}

// TopEngagement returns at most n videos with the highest engagement rate.
func TopEngagement(videos []model.Video, n int) []model.Video {
	return rank(videos, n, nil, func(a, b model.Video) bool { return a.EngagementRate() > b.EngagementRate() })
}

func rank(videos []model.Video, n int, keep Filter, less func(a, b model.Video) bool) []model.Video {
	res := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if keep != nil && !keep(v) {
			continue
		}
		res = append(res, v)
	}
	sort.SliceStable(res, func(i, j int) bool { return less(res[i], res[j]) })
	if len(res) > n {
		res = res[:n]
	}

	return res
}

// HumanCount shortens large numbers, e.g. 1.2M or 340.5K.
func HumanCount(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatUint(n, 10)
	}
}

// Thousands formats n with comma separators.
func Thousands(n uint64) string {
	return printer.Sprintf("%d", n)
}

func PreviewURL(id model.YoutubeVideoID) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", id)
}
