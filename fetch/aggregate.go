package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"ewintr.nl/ytdash/cache"
	"ewintr.nl/ytdash/model"
	"golang.org/x/sync/singleflight"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Clear(ctx context.Context) error
}

type Directory interface {
	ChannelID(name string) (model.YoutubeChannelID, bool)
}

type ChannelFailure struct {
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
	Quota   bool   `json:"quota"`
}

type Result struct {
	Videos []model.Video    `json:"videos"`
	Failed []ChannelFailure `json:"failed"`
}

func (r *Result) Succeeded() int {
	channels := map[string]bool{}
	for _, v := range r.Videos {
		channels[v.Channel] = true
	}
	return len(channels)
}

// Aggregator fetches a list of channels one after the other and merges the
// videos into a single collection. Identical concurrent requests share one
// batch, and distinct batches run one at a time so the pacing between
// channels holds for the whole process.
type Aggregator struct {
	fetcher   *ChannelFetcher
	directory Directory
	cache     Cache
	delay     DelayPolicy
	logger    *slog.Logger

	group   singleflight.Group
	batchMu sync.Mutex
}

func NewAggregator(fetcher *ChannelFetcher, directory Directory, cache Cache, delay DelayPolicy, logger *slog.Logger) *Aggregator {
	if delay == nil {
		delay = ConstantDelay(500 * time.Millisecond)
	}
	return &Aggregator{
		fetcher:   fetcher,
		directory: directory,
		cache:     cache,
		delay:     delay,
		logger:    logger,
	}
}

// FetchAll returns the merged videos of all named channels in the given
// order. A failing channel is recorded in Failed and does not stop the
// batch. The only error returned is ErrNoCredentials, or the context error
// when the batch was cancelled.
func (a *Aggregator) FetchAll(ctx context.Context, names []string, start time.Time) (*Result, error) {
	cred, err := a.fetcher.pool.Current()
	if err != nil {
		a.logger.Warn("no credentials configured, skipping fetch")
		return &Result{Videos: []model.Video{}, Failed: []ChannelFailure{}}, err
	}

	key := cacheKey(names, start, cred.Slot)
	if res, ok := a.cached(ctx, key); ok {
		a.logger.Info("serving videos from cache", slog.Int("channels", len(names)), slog.Int("count", len(res.Videos)))
		return res, nil
	}

	for {
		ch := a.group.DoChan(key, func() (any, error) {
			a.batchMu.Lock()
			defer a.batchMu.Unlock()

			if res, ok := a.cached(ctx, key); ok {
				return res, nil
			}
			return a.fetchBatch(ctx, key, names, start)
		})
		select {
		case <-ctx.Done():
			return &Result{Videos: []model.Video{}, Failed: []ChannelFailure{}}, ctx.Err()
		case r := <-ch:
			// a joined batch that was cancelled by its owner is retried
			if r.Shared && isContextErr(r.Err) && ctx.Err() == nil {
				continue
			}
			res := r.Val.(*Result)
			if r.Shared {
				res = res.clone()
			}
			return res, r.Err
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (a *Aggregator) cached(ctx context.Context, key string) (*Result, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, ok := a.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	res := &Result{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, false
	}

	return res, true
}

func (a *Aggregator) fetchBatch(ctx context.Context, key string, names []string, start time.Time) (*Result, error) {
	res := &Result{Videos: []model.Video{}, Failed: []ChannelFailure{}}
	for i, name := range names {
		if i > 0 {
			if err := wait(ctx, a.delay.Delay(i)); err != nil {
				return res, err
			}
		}

		channelID, ok := a.directory.ChannelID(name)
		if !ok {
			res.Failed = append(res.Failed, ChannelFailure{Channel: name, Reason: fmt.Sprintf("unknown channel %q", name)})
			a.logger.Warn("unknown channel", slog.String("channel", name))
			continue
		}

		videos, err := a.fetcher.Fetch(ctx, channelID, start)
		if err != nil {
			if errors.Is(err, ErrNoCredentials) {
				return &Result{Videos: []model.Video{}, Failed: []ChannelFailure{}}, err
			}
			res.Failed = append(res.Failed, ChannelFailure{
				Channel: name,
				Reason:  err.Error(),
				Quota:   errors.Is(err, ErrQuotaExceeded),
			})
			a.logger.Error("failed to fetch channel", slog.String("channel", name), slog.String("error", err.Error()))
			continue
		}

		for _, v := range videos {
			v.Channel = name
			res.Videos = append(res.Videos, v)
		}
	}

	if a.cache != nil {
		data, err := json.Marshal(res)
		if err != nil {
			a.logger.Error("failed to encode result for cache", slog.String("error", err.Error()))
			return res, nil
		}
		a.cache.Set(ctx, key, data)
	}

	return res, nil
}

// Invalidate drops all cached results.
func (a *Aggregator) Invalidate(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Clear(ctx)
}

func (r *Result) clone() *Result {
	return &Result{
		Videos: append([]model.Video{}, r.Videos...),
		Failed: append([]ChannelFailure{}, r.Failed...),
	}
}

func cacheKey(names []string, start time.Time, slot int) string {
	return cache.Key("videos", strings.Join(names, "\x1f"), start.UTC().Format(time.RFC3339), strconv.Itoa(slot))
}
