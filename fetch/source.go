package fetch

import (
	"context"
	"time"

	"ewintr.nl/ytdash/model"
)

// MaxPageSize is the largest page the source accepts for both listing and
// detail lookups.
const MaxPageSize = 50

type Metadata struct {
	ID           model.YoutubeVideoID
	Title        string
	PublishedAt  string
	Duration     string
	ViewCount    uint64
	LikeCount    uint64
	CommentCount uint64
	ThumbnailURL string
}

type VideoSource interface {
	ListVideos(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time, pageToken string) ([]model.YoutubeVideoID, string, error)
	VideoDetails(ctx context.Context, ids []model.YoutubeVideoID) ([]Metadata, error)
}

// SourceFactory returns a source that authenticates with apiKey.
type SourceFactory func(ctx context.Context, apiKey string) (VideoSource, error)
