package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"ewintr.nl/ytdash/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeYoutube serves numbered pages per channel. Page tokens are the page
// index as a string.
type fakeYoutube struct {
	mu          sync.Mutex
	pages       map[model.YoutubeChannelID][][]model.YoutubeVideoID
	details     map[model.YoutubeVideoID]Metadata
	failing     map[model.YoutubeChannelID]error
	quotaAtPage map[string]int
	listCalls   map[string]int
	detailCalls int
}

func newFakeYoutube() *fakeYoutube {
	return &fakeYoutube{
		pages:       map[model.YoutubeChannelID][][]model.YoutubeVideoID{},
		details:     map[model.YoutubeVideoID]Metadata{},
		failing:     map[model.YoutubeChannelID]error{},
		quotaAtPage: map[string]int{},
		listCalls:   map[string]int{},
	}
}

// addChannel registers pages of ids with default metadata.
func (fy *fakeYoutube) addChannel(channelID model.YoutubeChannelID, pages ...[]model.YoutubeVideoID) {
	fy.pages[channelID] = pages
	for _, page := range pages {
		for _, id := range page {
			fy.details[id] = Metadata{
				ID:           id,
				Title:        fmt.Sprintf("title %s", id),
				PublishedAt:  "2024-05-01T10:00:00Z",
				Duration:     "PT10M",
				ViewCount:    100,
				LikeCount:    10,
				CommentCount: 1,
			}
		}
	}
}

func (fy *fakeYoutube) calls() int {
	fy.mu.Lock()
	defer fy.mu.Unlock()

	total := fy.detailCalls
	for _, c := range fy.listCalls {
		total += c
	}
	return total
}

func (fy *fakeYoutube) factory() SourceFactory {
	return func(_ context.Context, apiKey string) (VideoSource, error) {
		return &keySource{fy: fy, key: apiKey}, nil
	}
}

type keySource struct {
	fy  *fakeYoutube
	key string
}

func (ks *keySource) ListVideos(_ context.Context, channelID model.YoutubeChannelID, _ time.Time, pageToken string) ([]model.YoutubeVideoID, string, error) {
	fy := ks.fy
	fy.mu.Lock()
	defer fy.mu.Unlock()

	fy.listCalls[ks.key]++
	idx := 0
	if pageToken != "" {
		idx, _ = strconv.Atoi(pageToken)
	}
	if p, ok := fy.quotaAtPage[ks.key]; ok && idx >= p {
		return nil, "", fmt.Errorf("%w: key %s", ErrQuotaExceeded, ks.key)
	}
	if err, ok := fy.failing[channelID]; ok {
		return nil, "", err
	}
	pages := fy.pages[channelID]
	if idx >= len(pages) {
		return []model.YoutubeVideoID{}, "", nil
	}
	next := ""
	if idx+1 < len(pages) {
		next = strconv.Itoa(idx + 1)
	}

	return pages[idx], next, nil
}

func (ks *keySource) VideoDetails(_ context.Context, ids []model.YoutubeVideoID) ([]Metadata, error) {
	fy := ks.fy
	fy.mu.Lock()
	defer fy.mu.Unlock()

	fy.detailCalls++
	mds := make([]Metadata, 0, len(ids))
	for _, id := range ids {
		if md, ok := fy.details[id]; ok {
			mds = append(mds, md)
		}
	}

	return mds, nil
}

type directory map[string]model.YoutubeChannelID

func (d directory) ChannelID(name string) (model.YoutubeChannelID, bool) {
	id, ok := d[name]
	return id, ok
}

func ids(vs []model.Video) []model.YoutubeVideoID {
	res := make([]model.YoutubeVideoID, 0, len(vs))
	for _, v := range vs {
		res = append(res, v.ID)
	}
	return res
}
