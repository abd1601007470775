package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"imagefolio/internal/models"
)

//go:embed schema.sql
var schema string

// PostgresDatabase implements UserStore and ImageStore on top of database/sql.
type PostgresDatabase struct {
	db *sql.DB
}

func NewPostgresDatabase(databaseURL string) (*PostgresDatabase, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	pg := &PostgresDatabase{db: db}
	if err := pg.db.Ping(); err != nil {
		return nil, err
	}

	slog.Debug("Database pinged")

	if _, err := pg.db.ExecContext(context.Background(), schema); err != nil {
		return nil, err
	}

	return pg, nil
}

func (pg *PostgresDatabase) Close() error {
	return pg.db.Close()
}

func (pg *PostgresDatabase) CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	const createUser = `
	INSERT INTO users (id, username, email, password_hash)
	VALUES($1, $2, $3, $4)
	RETURNING id, username, email, password_hash, created_at
	`

	row := pg.db.QueryRowContext(ctx, createUser, uuid.NewString(), username, email, passwordHash)
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)

	return u, err
}

func (pg *PostgresDatabase) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const getUserByEmail = `
	SELECT
		id,
		username,
		email,
		password_hash,
		created_at
	FROM users
	WHERE email = $1
	`

	row := pg.db.QueryRowContext(ctx, getUserByEmail, email)
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}

	return u, err
}

func (pg *PostgresDatabase) CreateImage(ctx context.Context, publicID, url string) (models.ImageReference, error) {
	const createImage = `
	INSERT INTO images(public_id, url)
	VALUES($1, $2)
	RETURNING public_id, url, created_at
	`

	row := pg.db.QueryRowContext(ctx, createImage, publicID, url)
	var ref models.ImageReference
	err := row.Scan(
		&ref.PublicID,
		&ref.URL,
		&ref.CreatedAt,
	)

	return ref, err
}

func (pg *PostgresDatabase) ListImages(ctx context.Context) ([]models.ImageReference, error) {
	const listImages = `
	SELECT
		public_id,
		url,
		created_at
	FROM images
	ORDER BY id
	`

	rows, err := pg.db.QueryContext(ctx, listImages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []models.ImageReference

	for rows.Next() {
		var ref models.ImageReference
		if err := rows.Scan(
			&ref.PublicID,
			&ref.URL,
			&ref.CreatedAt,
		); err != nil {
			return nil, err
		}

		items = append(items, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
