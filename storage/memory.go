package storage

import (
	"context"
	"sort"
	"sync"

	"ewintr.nl/ytdash/model"
)

type Memory struct {
	mu      sync.RWMutex
	reports []*model.InsightReport
}

func NewMemory() *Memory {
	return &Memory{reports: []*model.InsightReport{}}
}

func (m *Memory) Save(_ context.Context, report *model.InsightReport) error {
	if err := validate(report); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.reports {
		if r.ID == report.ID {
			m.reports[i] = report
			return nil
		}
	}
	m.reports = append(m.reports, report)

	return nil
}

func (m *Memory) Latest(_ context.Context, dashboard string, limit int) ([]*model.InsightReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []*model.InsightReport{}
	for _, r := range m.reports {
		if dashboard != "" && r.Dashboard != dashboard {
			continue
		}
		res = append(res, r)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	return res, nil
}
