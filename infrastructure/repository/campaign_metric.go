package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/all-ad-api/infrastructure/database/postgres"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

const campaignMetricsTable = "campaign_metrics cm"

//go:generate mockgen -source=campaign_metric.go -destination=mocks/campaign_metric_mock.go -package=mocks

type CampaignMetricRepository interface {
	Upsert(metric *domain.CampaignMetric) error
	ListByCampaign(teamID string, platform domain.AdPlatform, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error)
}

type campaignMetricRepository struct {
	conn *postgres.Connection
}

func NewCampaignMetricRepository(conn *postgres.Connection) CampaignMetricRepository {
	return &campaignMetricRepository{
		conn: conn,
	}
}

// Upsert insere ou atualiza a métrica diária pela chave (team_id, platform, campaign_id, date).
// Re-sincronizações sobrescrevem o dia com os números mais recentes da plataforma.
func (r *campaignMetricRepository) Upsert(metric *domain.CampaignMetric) error {
	query := squirrel.StatementBuilder.
		Insert("campaign_metrics").
		Columns("id", "team_id", "platform", "campaign_id", "date",
			"impressions", "clicks", "cost", "conversions", "revenue").
		Values(
			metric.ID,
			metric.TeamID,
			metric.Platform,
			metric.CampaignID,
			metric.Date,
			metric.Impressions,
			metric.Clicks,
			metric.Cost,
			metric.Conversions,
			metric.Revenue,
		).
		Suffix(`
			ON CONFLICT (team_id, platform, campaign_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				cost = EXCLUDED.cost,
				conversions = EXCLUDED.conversions,
				revenue = EXCLUDED.revenue,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignMetricRepository) ListByCampaign(teamID string, platform domain.AdPlatform, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query, args, err := squirrel.
		Select(`cm.id, cm.team_id, cm.platform, cm.campaign_id, cm.date,
			cm.impressions, cm.clicks, cm.cost, cm.conversions, cm.revenue,
			cm.created_at, cm.updated_at`).
		From(campaignMetricsTable).
		Where(squirrel.Eq{"cm.team_id": teamID, "cm.platform": platform, "cm.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"cm.date": startDate}).
		Where(squirrel.LtOrEq{"cm.date": endDate}).
		OrderBy("cm.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.CampaignMetric, 0)
	for rows.Next() {
		metric := &domain.CampaignMetric{}
		var platformValue string

		err = rows.Scan(
			&metric.ID,
			&metric.TeamID,
			&platformValue,
			&metric.CampaignID,
			&metric.Date,
			&metric.Impressions,
			&metric.Clicks,
			&metric.Cost,
			&metric.Conversions,
			&metric.Revenue,
			&metric.CreatedAt,
			&metric.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas: %w", err)
		}

		metric.Platform = domain.AdPlatform(platformValue)
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
