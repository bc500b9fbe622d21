package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/all-ad-api/infrastructure/database/postgres"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

const campaignsTable = "campaigns cp"

//go:generate mockgen -source=campaign.go -destination=mocks/campaign_mock.go -package=mocks

type CampaignRepository interface {
	Upsert(campaign *domain.Campaign) error
	GetByExternalID(teamID string, platform domain.AdPlatform, externalID string) (*domain.Campaign, error)
	ListByTeam(teamID string) ([]*domain.Campaign, error)
	ListByTeamAndPlatform(teamID string, platform domain.AdPlatform) ([]*domain.Campaign, error)
	UpdateStatus(teamID string, platform domain.AdPlatform, externalID string, status string, isActive bool) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = `cp.id, cp.team_id, cp.platform, cp.external_id, cp.name,
	cp.status, cp.is_active, cp.budget, cp.budget_type, cp.created_at, cp.updated_at`

// Upsert insere ou atualiza a campanha pela chave (team_id, platform, external_id).
// Rodar o mesmo sync duas vezes não duplica linhas.
func (r *campaignRepository) Upsert(campaign *domain.Campaign) error {
	query := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "team_id", "platform", "external_id", "name",
			"status", "is_active", "budget", "budget_type").
		Values(
			campaign.ID,
			campaign.TeamID,
			campaign.Platform,
			campaign.ExternalID,
			campaign.Name,
			campaign.Status,
			campaign.IsActive,
			campaign.Budget,
			campaign.BudgetType,
		).
		Suffix(`
			ON CONFLICT (team_id, platform, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				is_active = EXCLUDED.is_active,
				budget = EXCLUDED.budget,
				budget_type = EXCLUDED.budget_type,
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

func (r *campaignRepository) GetByExternalID(teamID string, platform domain.AdPlatform, externalID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"cp.team_id": teamID, "cp.platform": platform, "cp.external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign := &domain.Campaign{}
	var platformValue string

	err = r.conn.QueryRow(query, args...).Scan(
		&campaign.ID,
		&campaign.TeamID,
		&platformValue,
		&campaign.ExternalID,
		&campaign.Name,
		&campaign.Status,
		&campaign.IsActive,
		&campaign.Budget,
		&campaign.BudgetType,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	campaign.Platform = domain.AdPlatform(platformValue)

	return campaign, nil
}

func (r *campaignRepository) ListByTeam(teamID string) ([]*domain.Campaign, error) {
	return r.list(squirrel.Eq{"cp.team_id": teamID})
}

func (r *campaignRepository) ListByTeamAndPlatform(teamID string, platform domain.AdPlatform) ([]*domain.Campaign, error) {
	return r.list(squirrel.Eq{"cp.team_id": teamID, "cp.platform": platform})
}

func (r *campaignRepository) list(where squirrel.Eq) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(where).
		OrderBy("cp.platform ASC", "cp.name ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		var platformValue string

		err = rows.Scan(
			&campaign.ID,
			&campaign.TeamID,
			&platformValue,
			&campaign.ExternalID,
			&campaign.Name,
			&campaign.Status,
			&campaign.IsActive,
			&campaign.Budget,
			&campaign.BudgetType,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanhas: %w", err)
		}

		campaign.Platform = domain.AdPlatform(platformValue)
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// UpdateStatus reflete no banco o status confirmado pela plataforma
func (r *campaignRepository) UpdateStatus(teamID string, platform domain.AdPlatform, externalID string, status string, isActive bool) error {
	builder := squirrel.StatementBuilder.
		Update("campaigns").
		Set("status", status).
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"team_id": teamID, "platform": platform, "external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
