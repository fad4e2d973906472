package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"ewintr.nl/ytdash/fetch"
	"ewintr.nl/ytdash/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type VideoFetcher interface {
	FetchAll(ctx context.Context, names []string, start time.Time) (*fetch.Result, error)
	Invalidate(ctx context.Context) error
}

type InsightGenerator interface {
	Generate(ctx context.Context, dashboard model.Dashboard, days int, channels []string, videos []model.Video) *model.InsightReport
	History(ctx context.Context, dashboard string, limit int) ([]*model.InsightReport, error)
}

type Server struct {
	router *chi.Mux
	logger *slog.Logger
}

func NewServer(videos VideoFetcher, insights InsightGenerator, dashboards model.Dashboards, requestsPerMinute int, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
	}
	selector := NewSelector(dashboards, time.Now)
	videoAPI := NewVideoAPI(videos, selector, logger)
	insightAPI := NewInsightAPI(videos, insights, selector, logger)

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if requestsPerMinute > 0 {
		r.Use(httprate.LimitAll(requestsPerMinute, time.Minute))
	}

	r.Get("/", s.index(dashboards))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboards", selector.List)
		r.Get("/videos", videoAPI.List)
		r.Get("/report", videoAPI.Report)
		r.Post("/refresh", videoAPI.Refresh)
		r.Get("/insights", insightAPI.Generate)
		r.Get("/insights/history", insightAPI.History)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("%s is not a valid path", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusMethodNotAllowed, "method not allowed", fmt.Errorf("method %s is not allowed on %s", r.Method, r.URL.Path))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// index lists the configured dashboards and every registered route.
func (s *Server) index(dashboards model.Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes := []string{}
		if err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			routes = append(routes, method+" "+route)
			return nil
		}); err != nil {
			returnErr(s.logger, w, http.StatusInternalServerError, "could not list routes", err)
			return
		}
		sort.Strings(routes)

		JSON(w, http.StatusOK, map[string]any{
			"service":    "ytdash",
			"dashboards": dashboards.Names(),
			"routes":     routes,
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("requestid", middleware.GetReqID(r.Context())),
		)
	})
}

func returnErr(logger *slog.Logger, w http.ResponseWriter, status int, message string, err error, details ...any) {
	logger.Error(message, slog.String("error", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}
