package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"imagefolio/internal/models"
	"imagefolio/internal/storage"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, email, passwordHash string) (models.User, error) {
	u := models.User{
		ID:           "user-" + email,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[email] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func newTestService(store storage.UserStore) *Service {
	return NewService(store, []byte("test-secret"), time.Hour)
}

func TestSignupStoresHashedPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.Len(t, store.users, 1)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	// Different username and password, same email.
	_, err = svc.Signup(context.Background(), "bob", "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Len(t, store.users, 1)
}

func TestSignupMissingFields(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@example.com", "pw"},
		{"no email", "alice", "", "pw"},
		{"no password", "alice", "a@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "nope")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed with a different secret.
	other, err := NewToken("user-1", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	_, err = svc.VerifyToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiryBoundary(t *testing.T) {
	secret := []byte("test-secret")
	token, err := NewToken("user-1", secret, time.Hour)
	require.NoError(t, err)

	issued := time.Now()
	defer func() { jwt.TimeFunc = time.Now }()

	jwt.TimeFunc = func() time.Time { return issued.Add(59 * time.Minute) }
	userID, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	jwt.TimeFunc = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = VerifyToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
