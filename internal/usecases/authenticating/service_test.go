package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/all-ad-api/infrastructure/repository/mocks"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           42,
		Name:         "Ana",
		Email:        "ana@allad.io",
		PasswordHash: string(hash),
		TeamID:       "team-1",
		Active:       true,
		RoleID:       domain.RoleMember,
	}
}

func TestLoginUser(t *testing.T) {
	t.Run("Login com credenciais válidas emite JWT com o time do usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		user := activeUser(t, "senha-forte")
		userRepo.EXPECT().GetUserByEmail("ana@allad.io").Return(user, nil)

		token, err := svc.LoginUser("  Ana@AllAd.io ", "senha-forte")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "team-1", claims.UserTeamID)
		assert.Equal(t, domain.RoleMember, claims.UserRoleID)
	})

	t.Run("Senha incorreta retorna erro de credenciais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail("ana@allad.io").Return(activeUser(t, "senha-forte"), nil)

		_, err := svc.LoginUser("ana@allad.io", "senha-errada")
		assert.True(t, IsCredentialsError(err))

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, 42, authErr.UserID)
	})

	t.Run("Usuário inexistente retorna erro sem vazar detalhe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail("ninguem@allad.io").Return(nil, nil)

		_, err := svc.LoginUser("ninguem@allad.io", "qualquer")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Usuário desativado não loga", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		user := activeUser(t, "senha-forte")
		user.Active = false
		userRepo.EXPECT().GetUserByEmail("ana@allad.io").Return(user, nil)

		_, err := svc.LoginUser("ana@allad.io", "senha-forte")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Email e senha vazios retornam erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(repomocks.NewMockUserRepository(ctrl), testConfig())

		_, err := svc.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Token expirado retorna ErrExpiredToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(repomocks.NewMockUserRepository(ctrl), testConfig())

		claims := domain.Claims{
			UserID:     42,
			UserTeamID: "team-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
		assert.NoError(t, err)

		_, err = svc.ValidateToken(expired)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Token assinado com outro segredo é inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(repomocks.NewMockUserRepository(ctrl), testConfig())

		claims := domain.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outro-segredo"))
		assert.NoError(t, err)

		_, err = svc.ValidateToken(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado é inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(repomocks.NewMockUserRepository(ctrl), testConfig())

		_, err := svc.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthorizationError(err))
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Criação aplica hash na senha e role padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail("novo@allad.io").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.NotEqual(t, "senha-nova", user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-nova")))
			assert.Equal(t, domain.RoleMember, user.RoleID)
			assert.True(t, user.Active)
			user.ID = 7
			return user, nil
		})

		created, err := svc.CreateUser(&domain.User{
			Name:         "Novo",
			Email:        " Novo@AllAd.io ",
			PasswordHash: "senha-nova",
			TeamID:       "team-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.Equal(t, "novo@allad.io", created.Email)
	})

	t.Run("Email já cadastrado retorna erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByEmail("ana@allad.io").Return(activeUser(t, "x"), nil)

		_, err := svc.CreateUser(&domain.User{
			Name:         "Ana",
			Email:        "ana@allad.io",
			PasswordHash: "senha",
			TeamID:       "team-1",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Campos obrigatórios ausentes retornam erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(repomocks.NewMockUserRepository(ctrl), testConfig())

		_, err := svc.CreateUser(&domain.User{Email: "so-email@allad.io"})
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("Troca de senha exige a senha atual correta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByID(42).Return(activeUser(t, "senha-atual"), nil)

		err := svc.ChangePassword(42, "senha-errada", "senha-nova")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Troca de senha persiste o novo hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByID(42).Return(activeUser(t, "senha-atual"), nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-nova")))
			return nil
		})

		err := svc.ChangePassword(42, "senha-atual", "senha-nova")
		assert.NoError(t, err)
	})
}

func TestGetUserProfile(t *testing.T) {
	t.Run("Perfil retorna sem o hash da senha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userRepo := repomocks.NewMockUserRepository(ctrl)
		svc := NewService(userRepo, testConfig())

		userRepo.EXPECT().GetUserByID(42).Return(activeUser(t, "senha"), nil)

		user, err := svc.GetUserProfile(42)
		assert.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, "team-1", user.TeamID)
	})
}
