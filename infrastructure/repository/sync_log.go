package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/all-ad-api/infrastructure/database/postgres"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

const syncLogsTable = "sync_logs sl"

//go:generate mockgen -source=sync_log.go -destination=mocks/sync_log_mock.go -package=mocks

type SyncLogRepository interface {
	Insert(log *domain.SyncLog) error
	ListByTeam(teamID string, limit uint64) ([]*domain.SyncLog, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

// Insert registra a execução de um sync. A tabela é apenas de inserção,
// cada tentativa gera uma linha nova.
func (r *syncLogRepository) Insert(log *domain.SyncLog) error {
	query := squirrel.StatementBuilder.
		Insert("sync_logs").
		Columns("id", "team_id", "platform", "sync_type", "status",
			"records_synced", "error_message", "started_at", "completed_at").
		Values(
			log.ID,
			log.TeamID,
			log.Platform,
			log.SyncType,
			log.Status,
			log.RecordsSynced,
			log.ErrorMessage,
			log.StartedAt,
			log.CompletedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncLogRepository) ListByTeam(teamID string, limit uint64) ([]*domain.SyncLog, error) {
	query, args, err := squirrel.
		Select(`sl.id, sl.team_id, sl.platform, sl.sync_type, sl.status,
			sl.records_synced, sl.error_message, sl.started_at, sl.completed_at`).
		From(syncLogsTable).
		Where(squirrel.Eq{"sl.team_id": teamID}).
		OrderBy("sl.started_at DESC").
		Limit(limit).
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

	logs := make([]*domain.SyncLog, 0)
	for rows.Next() {
		log := &domain.SyncLog{}
		var platformValue string

		err = rows.Scan(
			&log.ID,
			&log.TeamID,
			&platformValue,
			&log.SyncType,
			&log.Status,
			&log.RecordsSynced,
			&log.ErrorMessage,
			&log.StartedAt,
			&log.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear logs de sync: %w", err)
		}

		log.Platform = domain.AdPlatform(platformValue)
		logs = append(logs, log)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}
