package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolcore/admin-service/internal/config"
	"github.com/schoolcore/admin-service/internal/models"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeAdminRepo) {
	t.Helper()

	admins := newFakeAdminRepo()
	cfg := config.AuthConfig{
		SigningKey: "test-signing-key",
		Issuer:     "admin-service-test",
		AccessTTL:  time.Minute,
	}
	return NewAuthService(admins, cfg, zerolog.Nop()), admins
}

func seedAdmin(t *testing.T, admins *fakeAdminRepo, email, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := &models.Admin{
		ID:           uuid.New().String(),
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, admins.Create(context.Background(), admin))
	return admin
}

func TestLogin(t *testing.T) {
	svc, admins := newAuthFixture(t)
	admin := seedAdmin(t, admins, "head@school.lk", "s3cret-pass")

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "head@school.lk",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.Admin)
	assert.Equal(t, admin.ID, resp.Admin.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, admins := newAuthFixture(t)
	seedAdmin(t, admins, "head@school.lk", "s3cret-pass")

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "head@school.lk",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@school.lk",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
