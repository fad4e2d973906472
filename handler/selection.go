package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ewintr.nl/ytdash/model"
)

var ErrInvalidQuery = errors.New("invalid query")

// Selection is what a request asks for: a dashboard, the channels on it and
// a fetch window.
type Selection struct {
	Dashboard model.Dashboard
	Channels  []string
	Window    model.FetchWindow
}

type Selector struct {
	dashboards model.Dashboards
	now        func() time.Time
}

func NewSelector(dashboards model.Dashboards, now func() time.Time) *Selector {
	return &Selector{
		dashboards: dashboards,
		now:        now,
	}
}

// Parse reads the dashboard, channel and range query parameters. Without
// channels the dashboard defaults are used, without range the last 7 days.
func (s *Selector) Parse(r *http.Request) (Selection, error) {
	q := r.URL.Query()

	dashboard, err := s.dashboards.Find(q.Get("dashboard"))
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	channels := q["channel"]
	if len(channels) == 0 {
		channels = dashboard.Defaults
	}
	for _, name := range channels {
		if _, ok := dashboard.ChannelID(name); !ok {
			return Selection{}, fmt.Errorf("%w: channel %q is not on the %s dashboard", ErrInvalidQuery, name, dashboard.Name)
		}
	}

	days := 7
	if raw := q.Get("range"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: range %q is not a number", ErrInvalidQuery, raw)
		}
	}
	window, err := model.NewFetchWindow(s.now(), days)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	return Selection{
		Dashboard: dashboard,
		Channels:  channels,
		Window:    window,
	}, nil
}

func (s *Selector) List(w http.ResponseWriter, r *http.Request) {
	type respDashboard struct {
		Name     model.DashboardName `json:"name"`
		Title    string              `json:"title"`
		Channels []string            `json:"channels"`
		Defaults []string            `json:"defaults"`
	}
	resp := struct {
		Dashboards []respDashboard `json:"dashboards"`
		Ranges     []int           `json:"ranges"`
	}{
		Dashboards: []respDashboard{},
		Ranges:     model.ValidRanges,
	}
	for _, name := range s.dashboards.Names() {
		d := s.dashboards[name]
		resp.Dashboards = append(resp.Dashboards, respDashboard{
			Name:     d.Name,
			Title:    d.Title,
			Channels: d.ChannelNames(),
			Defaults: d.Defaults,
		})
	}

	JSON(w, http.StatusOK, resp)
}
