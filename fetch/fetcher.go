package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ewintr.nl/ytdash/model"
)

// ChannelFetcher collects every video a channel published after a start
// date, walking all result pages.
type ChannelFetcher struct {
	pool      *CredentialPool
	newSource SourceFactory
	sources   map[string]VideoSource
	mu        sync.Mutex
	now       func() time.Time
	logger    *slog.Logger
}

func NewChannelFetcher(pool *CredentialPool, newSource SourceFactory, logger *slog.Logger) *ChannelFetcher {
	return &ChannelFetcher{
		pool:      pool,
		newSource: newSource,
		sources:   map[string]VideoSource{},
		now:       time.Now,
		logger:    logger,
	}
}

// Fetch returns all videos for channelID, or no videos and an error. On a
// quota rejection the pool is rotated and the channel is fetched again from
// the first page, at most once per credential.
func (f *ChannelFetcher) Fetch(ctx context.Context, channelID model.YoutubeChannelID, start time.Time) ([]model.Video, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: empty channel id", ErrInvalidInput)
	}
	if start.After(f.now()) {
		return nil, fmt.Errorf("%w: start date %s is in the future", ErrInvalidInput, start.Format(time.DateOnly))
	}

	cred, err := f.pool.Current()
	if err != nil {
		return nil, err
	}
	maxAttempts := f.pool.Len()

	for attempt := 1; ; attempt++ {
		videos, err := f.fetchPages(ctx, cred, channelID, start)
		if err == nil {
			f.logger.Info("fetched channel", slog.String("channelid", string(channelID)), slog.Int("count", len(videos)), slog.Int("slot", cred.Slot))
			return videos, nil
		}
		if !errors.Is(err, ErrQuotaExceeded) {
			return nil, &SourceError{Channel: string(channelID), Err: err}
		}
		if maxAttempts <= 1 || attempt >= maxAttempts {
			return nil, fmt.Errorf("channel %s: %w", channelID, err)
		}

		failed := cred.Slot
		cred, err = f.pool.Advance(failed)
		if err != nil {
			return nil, err
		}
		f.logger.Warn("quota exceeded, rotating credential", slog.String("channelid", string(channelID)), slog.Int("from", failed), slog.Int("to", cred.Slot), slog.Int("attempt", attempt))
	}
}

func (f *ChannelFetcher) fetchPages(ctx context.Context, cred Credential, channelID model.YoutubeChannelID, start time.Time) ([]model.Video, error) {
	src, err := f.source(ctx, cred)
	if err != nil {
		return nil, err
	}

	videos := []model.Video{}
	seen := map[model.YoutubeVideoID]bool{}
	token := ""
	for {
		ids, next, err := src.ListVideos(ctx, channelID, start, token)
		if err != nil {
			return nil, err
		}
		f.logger.Debug("fetched video page", slog.String("channelid", string(channelID)), slog.String("pagetoken", token), slog.Int("count", len(ids)))

		fresh := make([]model.YoutubeVideoID, 0, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			fresh = append(fresh, id)
		}

		for len(fresh) > 0 {
			n := min(len(fresh), MaxPageSize)
			batch := fresh[:n]
			fresh = fresh[n:]

			mds, err := src.VideoDetails(ctx, batch)
			if err != nil {
				return nil, err
			}
			for _, md := range mds {
				video, err := toVideo(md)
				if err != nil {
					return nil, err
				}
				videos = append(videos, video)
			}
		}

		token = next
		if token == "" {
			break
		}
	}

	return videos, nil
}

// source returns one client per key so rotation does not rebuild clients.
func (f *ChannelFetcher) source(ctx context.Context, cred Credential) (VideoSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if src, ok := f.sources[cred.Key]; ok {
		return src, nil
	}
	src, err := f.newSource(ctx, cred.Key)
	if err != nil {
		return nil, err
	}
	f.sources[cred.Key] = src

	return src, nil
}

func toVideo(md Metadata) (model.Video, error) {
	secs, err := ParseDuration(md.Duration)
	if err != nil {
		return model.Video{}, fmt.Errorf("video %s: %w", md.ID, err)
	}

	var published time.Time
	if md.PublishedAt != "" {
		published, err = time.Parse(time.RFC3339, md.PublishedAt)
		if err != nil {
			return model.Video{}, fmt.Errorf("video %s: could not parse publish time: %w", md.ID, err)
		}
	}

	return model.Video{
		ID:              md.ID,
		Title:           md.Title,
		PublishedAt:     published.UTC(),
		DurationSeconds: secs,
		IsShortForm:     model.IsShortForm(secs),
		Views:           md.ViewCount,
		Likes:           md.LikeCount,
		Comments:        md.CommentCount,
		ThumbnailURL:    md.ThumbnailURL,
	}, nil
}
