package model

import (
	"fmt"
	"time"
)

// ShortFormMaxSeconds is the longest duration that still counts as a short.
const ShortFormMaxSeconds = 181

type YoutubeVideoID string

type YoutubeChannelID string

type Video struct {
	ID              YoutubeVideoID `json:"id"`
	Title           string         `json:"title"`
	PublishedAt     time.Time      `json:"published_at"`
	DurationSeconds int            `json:"duration_seconds"`
	IsShortForm     bool           `json:"is_short"`
	Views           uint64         `json:"views"`
	Likes           uint64         `json:"likes"`
	Comments        uint64         `json:"comments"`
	ThumbnailURL    string         `json:"thumbnail_url"`
	Channel         string         `json:"channel"`
}

func IsShortForm(durationSeconds int) bool {
	return durationSeconds <= ShortFormMaxSeconds
}

func (v Video) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// EngagementRate is likes plus comments as a percentage of views.
func (v Video) EngagementRate() float64 {
	if v.Views == 0 {
		return 0
	}
	return float64(v.Likes+v.Comments) / float64(v.Views) * 100
}
