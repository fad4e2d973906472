package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ewintr.nl/ytdash/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var quotaReasons = []string{"quotaExceeded", "dailyLimitExceeded"}

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

// NewYoutubeFactory builds a client per API key. Extra options are passed on
// to every client, e.g. a custom endpoint.
func NewYoutubeFactory(opts ...option.ClientOption) SourceFactory {
	return func(ctx context.Context, apiKey string) (VideoSource, error) {
		clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
		client, err := youtube.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("could not create youtube service: %w", err)
		}
		return NewYoutube(client), nil
	}
}

func (y *Youtube) ListVideos(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time, pageToken string) ([]model.YoutubeVideoID, string, error) {
	call := y.Client.Search.
		List([]string{"id"}).
		MaxResults(MaxPageSize).
		Type("video").
		Order("date").
		ChannelId(string(channelID)).
		PublishedAfter(publishedAfter.UTC().Format(time.RFC3339))

	if pageToken != "" {
		call.PageToken(pageToken)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return []model.YoutubeVideoID{}, "", classify(err)
	}

	ids := make([]model.YoutubeVideoID, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, model.YoutubeVideoID(item.Id.VideoId))
	}

	return ids, response.NextPageToken, nil
}

func (y *Youtube) VideoDetails(ctx context.Context, ytIDs []model.YoutubeVideoID) ([]Metadata, error) {
	strIDs := make([]string, len(ytIDs))
	for i, id := range ytIDs {
		strIDs[i] = string(id)
	}
	call := y.Client.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(strIDs, ","))

	response, err := call.Context(ctx).Do()
	if err != nil {
		return []Metadata{}, classify(err)
	}

	mds := make([]Metadata, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		md := Metadata{
			ID:          model.YoutubeVideoID(item.Id),
			Title:       item.Snippet.Title,
			PublishedAt: item.Snippet.PublishedAt,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			md.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}
		if item.ContentDetails != nil {
			md.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			md.ViewCount = item.Statistics.ViewCount
			md.LikeCount = item.Statistics.LikeCount
			md.CommentCount = item.Statistics.CommentCount
		}

		mds = append(mds, md)
	}

	return mds, nil
}

// classify maps quota rejections onto ErrQuotaExceeded and leaves everything
// else untouched.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			for _, reason := range quotaReasons {
				if item.Reason == reason {
					return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
				}
			}
		}
	}
	msg := err.Error()
	for _, reason := range quotaReasons {
		if strings.Contains(msg, reason) {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
		}
	}

	return err
}
