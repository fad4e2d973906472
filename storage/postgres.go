package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"ewintr.nl/ytdash/model"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not reachable: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return p, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) migrate() error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.Up(p.db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

type PostgresInsightRepository struct {
	*Postgres
}

func NewPostgresInsightRepository(postgres *Postgres) *PostgresInsightRepository {
	return &PostgresInsightRepository{postgres}
}

func (p *PostgresInsightRepository) Save(ctx context.Context, report *model.InsightReport) error {
	if err := validate(report); err != nil {
		return err
	}

	channels := report.Channels
	if channels == nil {
		channels = []string{}
	}

	query := `INSERT INTO insight_report (id, dashboard, days, channels, provider, text, available, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id)
DO UPDATE SET
  dashboard = EXCLUDED.dashboard,
  days = EXCLUDED.days,
  channels = EXCLUDED.channels,
  provider = EXCLUDED.provider,
  text = EXCLUDED.text,
  available = EXCLUDED.available,
  created_at = EXCLUDED.created_at;`
	if _, err := p.db.ExecContext(ctx, query,
		report.ID,
		report.Dashboard,
		report.Days,
		pq.Array(channels),
		report.Provider,
		report.Text,
		report.Available,
		report.CreatedAt,
	); err != nil {
		return fmt.Errorf("could not save insight report: %w", err)
	}

	return nil
}

func (p *PostgresInsightRepository) Latest(ctx context.Context, dashboard string, limit int) ([]*model.InsightReport, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, dashboard, days, channels, provider, text, available, created_at
FROM insight_report
WHERE $1 = '' OR dashboard = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := p.db.QueryContext(ctx, query, dashboard, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query insight reports: %w", err)
	}
	defer rows.Close()

	reports := []*model.InsightReport{}
	for rows.Next() {
		r := &model.InsightReport{}
		var channels pq.StringArray
		if err := rows.Scan(&r.ID, &r.Dashboard, &r.Days, &channels, &r.Provider, &r.Text, &r.Available, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan insight report: %w", err)
		}
		r.Channels = []string(channels)
		r.CreatedAt = r.CreatedAt.UTC()
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}
