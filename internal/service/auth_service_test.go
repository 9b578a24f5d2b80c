package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type stubUserFinder struct {
	users map[string]models.User
}

func (s *stubUserFinder) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserFinder) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func newAuthFixture(t *testing.T) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUserFinder{users: map[string]models.User{
		"user-1": {ID: "user-1", Email: "teacher@example.edu", PasswordHash: string(hash), Role: models.RoleTeacher},
	}}
	return NewAuthService(users, "test-secret", time.Hour, 24*time.Hour, nil, nil)
}

func TestAuthServiceLogin(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.edu",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.edu",
		Password: "wrong-password",
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, typed.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "secret-password",
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, typed.Code)
}

func TestAuthServiceRefresh(t *testing.T) {
	svc := newAuthFixture(t)

	login, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.edu",
		Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthServiceRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthFixture(t)

	login, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.edu",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh token required")
}

func TestAuthServiceParseTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.ParseToken("not-a-token")
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, typed.Code)
}
