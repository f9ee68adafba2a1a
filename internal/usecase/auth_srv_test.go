package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"book-review/internal/dto/request"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, &request.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))

	_, err = svc.Auth.Register(ctx, &request.RegisterRequest{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "secret456",
	})
	requireStatus(t, err, http.StatusConflict, "Email already registered")
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "Alice", "alice@example.com")

	auth, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, userID.String(), auth.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), auth.ExpiresAt, 5*time.Second)

	claims, err := utils.ParseToken("test-secret", auth.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid email or password")

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid email or password")
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	registerUser(t, svc, "Alice", "alice@example.com")

	auth, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := utils.ParseToken("test-secret", auth.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Auth.Logout(ctx, claims.ID, claims.ExpiresAt.Time))

	revoked, err := repo.Token.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "Alice", "alice@example.com")

	me, err := svc.Auth.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Name)

	_, err = svc.Auth.Me(ctx, uuid.New())
	requireStatus(t, err, http.StatusNotFound, "User not found")
}

func TestRegisterPasswordOverBcryptLimit(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("é", 40),
	})
	requireStatus(t, err, http.StatusBadRequest, "Password must be at most 72 bytes")
}
