package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"ewintr.nl/ytdash/model"
)

type InsightAPI struct {
	videos   VideoFetcher
	insights InsightGenerator
	selector *Selector
	logger   *slog.Logger
}

func NewInsightAPI(videos VideoFetcher, insights InsightGenerator, selector *Selector, logger *slog.Logger) *InsightAPI {
	return &InsightAPI{
		videos:   videos,
		insights: insights,
		selector: selector,
		logger:   logger,
	}
}

func (i *InsightAPI) Generate(w http.ResponseWriter, r *http.Request) {
	sel, res, ok := fetchSelection(w, r, i.selector, i.videos, i.logger)
	if !ok {
		return
	}

	rep := i.insights.Generate(r.Context(), sel.Dashboard, sel.Window.Days, sel.Channels, res.Videos)
	JSON(w, http.StatusOK, struct {
		respSelection
		Insights *model.InsightReport `json:"insights"`
	}{
		respSelection: newRespSelection(sel, res),
		Insights:      rep,
	})
}

func (i *InsightAPI) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 20
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "invalid query", ErrInvalidQuery, "limit must be a positive number")
			return
		}
		limit = n
	}

	reports, err := i.insights.History(r.Context(), q.Get("dashboard"), limit)
	if err != nil {
		returnErr(i.logger, w, http.StatusInternalServerError, "could not list insights", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		Insights []*model.InsightReport `json:"insights"`
	}{
		Insights: reports,
	})
}
