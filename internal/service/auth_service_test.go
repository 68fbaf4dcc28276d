package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type mockUserRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	revoked       []string
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (m *mockUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.refreshTokens == nil {
		m.refreshTokens = make(map[string]*models.RefreshToken)
	}
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := m.refreshTokens[token]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	m.revoked = append(m.revoked, id)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepo) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "teacher@example.edu", PasswordHash: string(hash), FullName: "Teacher One", Role: models.RoleFaculty, Active: true},
		"user-2": {ID: "user-2", Email: "inactive@example.edu", PasswordHash: string(hash), Role: models.RoleFaculty, Active: false},
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return svc, repo
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, repo := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "teacher@example.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Len(t, repo.refreshTokens, 1)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleFaculty, claims.Role)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "teacher@example.edu", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", appErrors.FromError(err).Code)
}

func TestLoginRejectsUnknownAndInactive(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.edu", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "inactive@example.edu", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "ACCOUNT_INACTIVE", appErrors.FromError(err).Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, repo := newAuthFixture(t)

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "teacher@example.edu", Password: "secret123"})
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, res.RefreshToken)
	assert.Len(t, repo.revoked, 1)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	svc, repo := newAuthFixture(t)

	repo.refreshTokens = map[string]*models.RefreshToken{
		"stale": {ID: "rt-1", UserID: "user-1", Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)},
	}
	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", appErrors.FromError(err).Code)
}
