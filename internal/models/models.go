package models

import "time"

// User is a registered account. The password survives only as a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImageReference points at an asset that lives on the media host. A record is
// created only after the host has confirmed the upload and is never mutated.
type ImageReference struct {
	PublicID  string    `json:"publicId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
