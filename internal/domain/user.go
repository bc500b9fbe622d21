package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso dos usuários do painel.
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleMember  = 3
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	TeamID       string     `json:"team_id"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UpdateUserRequest carrega as alterações parciais de um usuário. Campos
// nulos são ignorados na atualização.
type UpdateUserRequest struct {
	ID      int     `json:"id"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Active  *bool   `json:"active,omitempty"`
	RoleID  *int    `json:"role_id,omitempty"`
	Deleted *bool   `json:"deleted,omitempty"`
}

// Claims são as claims do JWT emitido no login. TeamID é o contexto
// explícito de sessão propagado para todas as chamadas de orquestração.
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserTeamID string
	UserActive bool
	UserRoleID int
	jwt.RegisteredClaims
}
