// Package storage defines the persistence contracts and their Postgres
// implementation.
package storage

import (
	"context"
	"errors"

	"imagefolio/internal/models"
)

var ErrNotFound = errors.New("storage: record not found")

// UserStore persists account records.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ImageStore persists references to assets held by the media host.
type ImageStore interface {
	CreateImage(ctx context.Context, publicID, url string) (models.ImageReference, error)
	ListImages(ctx context.Context) ([]models.ImageReference, error)
}
