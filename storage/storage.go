package storage

import (
	"context"
	"errors"

	"ewintr.nl/ytdash/model"
)

var ErrInvalidReport = errors.New("invalid insight report")

type InsightRepository interface {
	Save(ctx context.Context, report *model.InsightReport) error
	// Latest returns the most recent reports first. An empty dashboard
	// matches all dashboards.
	Latest(ctx context.Context, dashboard string, limit int) ([]*model.InsightReport, error)
}

func validate(report *model.InsightReport) error {
	if report == nil {
		return ErrInvalidReport
	}
	if report.Dashboard == "" {
		return errors.Join(ErrInvalidReport, errors.New("missing dashboard"))
	}
	return nil
}
