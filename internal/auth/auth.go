// Package auth implements signup, login and stateless session tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"imagefolio/internal/models"
	"imagefolio/internal/storage"
)

const bcryptCost = 10

// dummyHash is compared against when the email is unknown, so a login miss
// costs one bcrypt verification whether the account exists or not.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("imagefolio-no-such-user"), bcryptCost)

type Service struct {
	users    storage.UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewService(users storage.UserStore, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Signup creates an account. The caller still has to log in afterwards; no
// token is issued here.
func (s *Service) Signup(ctx context.Context, username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return models.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	return s.users.CreateUser(ctx, username, email, string(hash))
}

// Login verifies the credentials and issues a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return NewToken(user.ID, s.secret, s.tokenTTL)
}

// VerifyToken resolves a presented token to the user id it was issued for.
func (s *Service) VerifyToken(token string) (string, error) {
	return VerifyToken(token, s.secret)
}
