package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"ewintr.nl/ytdash/fetch"
	"ewintr.nl/ytdash/model"
	"ewintr.nl/ytdash/report"
)

const noVideosWarning = "No videos fetched. Possible causes are an exceeded API quota, API key issues or no videos in the selected time range."

type VideoAPI struct {
	videos   VideoFetcher
	selector *Selector
	logger   *slog.Logger
}

func NewVideoAPI(videos VideoFetcher, selector *Selector, logger *slog.Logger) *VideoAPI {
	return &VideoAPI{
		videos:   videos,
		selector: selector,
		logger:   logger,
	}
}

type respSelection struct {
	Dashboard model.DashboardName `json:"dashboard"`
	Channels  []string            `json:"channels"`
	Window    model.FetchWindow   `json:"window"`
	Period    string              `json:"period"`
	Warning   string              `json:"warning,omitempty"`
}

func (v *VideoAPI) List(w http.ResponseWriter, r *http.Request) {
	sel, res, ok := fetchSelection(w, r, v.selector, v.videos, v.logger)
	if !ok {
		return
	}

	JSON(w, http.StatusOK, struct {
		respSelection
		Videos []model.Video          `json:"videos"`
		Failed []fetch.ChannelFailure `json:"failed"`
	}{
		respSelection: newRespSelection(sel, res),
		Videos:        res.Videos,
		Failed:        res.Failed,
	})
}

func (v *VideoAPI) Report(w http.ResponseWriter, r *http.Request) {
	sel, res, ok := fetchSelection(w, r, v.selector, v.videos, v.logger)
	if !ok {
		return
	}

	JSON(w, http.StatusOK, struct {
		respSelection
		Report report.Report          `json:"report"`
		Failed []fetch.ChannelFailure `json:"failed"`
	}{
		respSelection: newRespSelection(sel, res),
		Report:        report.Build(res.Videos, sel.Channels),
		Failed:        res.Failed,
	})
}

func (v *VideoAPI) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := v.videos.Invalidate(r.Context()); err != nil {
		returnErr(v.logger, w, http.StatusInternalServerError, "could not clear cache", err)
		return
	}
	v.logger.Info("cache cleared")
	Message(w, http.StatusOK, "cache cleared")
}

// fetchSelection parses the request and fetches its videos. It writes the
// error response itself and returns false when the caller should stop.
func fetchSelection(w http.ResponseWriter, r *http.Request, selector *Selector, videos VideoFetcher, logger *slog.Logger) (Selection, *fetch.Result, bool) {
	sel, err := selector.Parse(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid query", err)
		return Selection{}, nil, false
	}

	res, err := videos.FetchAll(r.Context(), sel.Channels, sel.Window.Start)
	switch {
	case errors.Is(err, fetch.ErrNoCredentials):
		returnErr(logger, w, http.StatusServiceUnavailable, "no data: no YouTube API key configured", err)
		return Selection{}, nil, false
	case err != nil:
		returnErr(logger, w, http.StatusInternalServerError, "could not fetch videos", err)
		return Selection{}, nil, false
	}

	return sel, res, true
}

func newRespSelection(sel Selection, res *fetch.Result) respSelection {
	rs := respSelection{
		Dashboard: sel.Dashboard.Name,
		Channels:  sel.Channels,
		Window:    sel.Window,
		Period:    sel.Window.String(),
	}
	if len(res.Videos) == 0 {
		rs.Warning = noVideosWarning
	}
	return rs
}
