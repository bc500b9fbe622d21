package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/all-ad-api/infrastructure/database/postgres"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

const credentialsTable = "credentials c"

//go:generate mockgen -source=credential.go -destination=mocks/credential_mock.go -package=mocks

type CredentialRepository interface {
	GetByID(id string) (*domain.Credential, error)
	GetByNaturalKey(teamID string, platform domain.AdPlatform, accountID string) (*domain.Credential, error)
	GetActive(teamID string, platform domain.AdPlatform) (*domain.Credential, error)
	ListByTeam(teamID string) ([]*domain.Credential, error)
	ListActiveByTeam(teamID string) ([]*domain.Credential, error)
	ListActiveByPlatform(platform domain.AdPlatform) ([]*domain.Credential, error)
	ListActive() ([]*domain.Credential, error)
	Upsert(cred *domain.Credential) error
	SaveTokenRecord(teamID string, platform domain.AdPlatform, accountID string, rec *domain.TokenRecord) error
	GetTokenRecord(teamID string, platform domain.AdPlatform, accountID string) (*domain.TokenRecord, error)
	RecordSyncResult(id string, syncedAt time.Time, lastError *string) error
	Deactivate(id string) error
	Delete(id string) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

const credentialColumns = `c.id, c.team_id, c.platform, c.account_id, c.account_name,
	c.credentials, c.settings, c.is_active, c.granted_scope, c.connected_at,
	c.last_synced_at, c.last_error, c.created_at, c.updated_at`

func (r *credentialRepository) GetByID(id string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	cred, err := r.scanCredential(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return cred, nil
}

// GetByNaturalKey busca pela chave de upsert, incluindo credenciais
// desativadas: uma reconexão OAuth reaproveita a linha existente.
func (r *credentialRepository) GetByNaturalKey(teamID string, platform domain.AdPlatform, accountID string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(squirrel.Eq{"c.team_id": teamID, "c.platform": platform, "c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	cred, err := r.scanCredential(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return cred, nil
}

func (r *credentialRepository) GetActive(teamID string, platform domain.AdPlatform) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(squirrel.Eq{"c.team_id": teamID, "c.platform": platform, "c.is_active": true}).
		OrderBy("c.created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	cred, err := r.scanCredential(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return cred, nil
}

func (r *credentialRepository) ListByTeam(teamID string) ([]*domain.Credential, error) {
	return r.list(squirrel.Eq{"c.team_id": teamID})
}

func (r *credentialRepository) ListActiveByTeam(teamID string) ([]*domain.Credential, error) {
	return r.list(squirrel.Eq{"c.team_id": teamID, "c.is_active": true})
}

func (r *credentialRepository) ListActiveByPlatform(platform domain.AdPlatform) ([]*domain.Credential, error) {
	return r.list(squirrel.Eq{"c.platform": platform, "c.is_active": true})
}

func (r *credentialRepository) ListActive() ([]*domain.Credential, error) {
	return r.list(squirrel.Eq{"c.is_active": true})
}

func (r *credentialRepository) list(where squirrel.Eq) ([]*domain.Credential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(where).
		OrderBy("c.platform ASC", "c.account_name ASC").
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

	credentials := make([]*domain.Credential, 0)
	for rows.Next() {
		cred, err := r.scanCredentialRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear credenciais: %w", err)
		}
		credentials = append(credentials, cred)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return credentials, nil
}

// Upsert insere ou atualiza a credencial pela chave (team_id, platform, account_id).
// Reconexões via OAuth reaproveitam a linha existente em vez de duplicá-la.
func (r *credentialRepository) Upsert(cred *domain.Credential) error {
	credentialsJSON, err := json.Marshal(cred.Credentials)
	if err != nil {
		return fmt.Errorf("erro ao serializar credentials para JSON: %w", err)
	}

	settingsJSON, err := json.Marshal(cred.Settings)
	if err != nil {
		return fmt.Errorf("erro ao serializar settings para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("credentials").
		Columns("id", "team_id", "platform", "account_id", "account_name",
			"credentials", "settings", "is_active", "granted_scope", "connected_at").
		Values(
			cred.ID,
			cred.TeamID,
			cred.Platform,
			cred.AccountID,
			cred.AccountName,
			credentialsJSON,
			settingsJSON,
			cred.IsActive,
			cred.GrantedScope,
			cred.ConnectedAt,
		).
		Suffix(`
			ON CONFLICT (team_id, platform, account_id) DO UPDATE SET
				account_name = EXCLUDED.account_name,
				credentials = EXCLUDED.credentials,
				settings = EXCLUDED.settings,
				is_active = EXCLUDED.is_active,
				granted_scope = EXCLUDED.granted_scope,
				connected_at = EXCLUDED.connected_at,
				last_error = NULL,
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

// SaveTokenRecord grava o material de token no registro durável da credencial.
// É a escrita que precisa ter sucesso para um refresh ser considerado efetivado.
func (r *credentialRepository) SaveTokenRecord(teamID string, platform domain.AdPlatform, accountID string, rec *domain.TokenRecord) error {
	builder := squirrel.StatementBuilder.
		Update("credentials").
		Set("access_token", rec.AccessToken).
		Set("refresh_token", rec.RefreshToken).
		Set("token_type", rec.TokenType).
		Set("granted_scope", rec.Scope).
		Set("token_expires_at", rec.ExpiresAt).
		Set("refresh_expires_at", rec.RefreshExpiresAt).
		Set("connected_at", squirrel.Expr("COALESCE(connected_at, NOW())")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"team_id": teamID, "platform": platform, "account_id": accountID}).
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

func (r *credentialRepository) GetTokenRecord(teamID string, platform domain.AdPlatform, accountID string) (*domain.TokenRecord, error) {
	query, args, err := squirrel.
		Select("c.access_token", "c.refresh_token", "c.token_type", "c.granted_scope",
			"c.token_expires_at", "c.refresh_expires_at").
		From(credentialsTable).
		Where(squirrel.Eq{"c.team_id": teamID, "c.platform": platform, "c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rec := &domain.TokenRecord{}
	var accessToken, refreshToken, tokenType, scope sql.NullString
	var expiresAt, refreshExpiresAt sql.NullTime

	err = r.conn.QueryRow(query, args...).Scan(
		&accessToken,
		&refreshToken,
		&tokenType,
		&scope,
		&expiresAt,
		&refreshExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear token: %w", err)
	}

	if !accessToken.Valid && !refreshToken.Valid {
		return nil, nil
	}

	rec.AccessToken = accessToken.String
	rec.RefreshToken = refreshToken.String
	rec.TokenType = tokenType.String
	rec.Scope = scope.String
	if expiresAt.Valid {
		rec.ExpiresAt = expiresAt.Time
	}
	if refreshExpiresAt.Valid {
		t := refreshExpiresAt.Time
		rec.RefreshExpiresAt = &t
	}

	return rec, nil
}

func (r *credentialRepository) RecordSyncResult(id string, syncedAt time.Time, lastError *string) error {
	builder := squirrel.StatementBuilder.
		Update("credentials").
		Set("last_synced_at", syncedAt).
		Set("last_error", lastError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Deactivate desativa a credencial sem remover o histórico (soft delete)
func (r *credentialRepository) Deactivate(id string) error {
	builder := squirrel.StatementBuilder.
		Update("credentials").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Delete remove a credencial de forma definitiva, apenas por pedido explícito
func (r *credentialRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete("credentials").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

type credentialScanner interface {
	Scan(dest ...interface{}) error
}

func (r *credentialRepository) scanCredential(row credentialScanner) (*domain.Credential, error) {
	cred := &domain.Credential{}
	var credentialsJSON, settingsJSON []byte
	var platform string

	err := row.Scan(
		&cred.ID,
		&cred.TeamID,
		&platform,
		&cred.AccountID,
		&cred.AccountName,
		&credentialsJSON,
		&settingsJSON,
		&cred.IsActive,
		&cred.GrantedScope,
		&cred.ConnectedAt,
		&cred.LastSyncedAt,
		&cred.LastError,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cred.Platform = domain.AdPlatform(platform)

	if credentialsJSON != nil {
		bag := domain.CredentialBag{}
		if err := json.Unmarshal(credentialsJSON, &bag); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de credentials: %w", err)
		}
		cred.Credentials = bag
	}

	if settingsJSON != nil {
		bag := domain.CredentialBag{}
		if err := json.Unmarshal(settingsJSON, &bag); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de settings: %w", err)
		}
		cred.Settings = bag
	}

	return cred, nil
}

func (r *credentialRepository) scanCredentialRows(rows *sql.Rows) (*domain.Credential, error) {
	return r.scanCredential(rows)
}
