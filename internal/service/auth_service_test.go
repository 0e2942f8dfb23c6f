package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fitlog/workout-app/internal/domain"
	"fitlog/workout-app/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (m *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := *user
	m.byEmail[user.Email] = &cp
	return nil
}

func (m *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ann", "ann@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Empty(t, user.PasswordHash, "hash must never leave the service")

	// The stored hash is bcrypt, not the raw password.
	stored := repo.byEmail["ann@example.com"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))

	token, loggedIn, err := svc.Login(ctx, "ann@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	// The token carries the user id in the uid claim.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@example.com", "password123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other Ann", "ann@example.com", "different-pass")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@example.com", "password123")
	require.NoError(t, err)

	// Unknown email and wrong password map to the same failure.
	_, _, errUnknown := svc.Login(ctx, "bob@example.com", "password123")
	_, _, errWrongPass := svc.Login(ctx, "ann@example.com", "nope")
	require.ErrorIs(t, errUnknown, ErrAuthenticationFailed)
	require.ErrorIs(t, errWrongPass, ErrAuthenticationFailed)
}
