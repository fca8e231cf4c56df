// Package models holds the client-side view of the folio API payloads.
package models

import "time"

// Account is the identity the server resolves a token to.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Picture     string    `json:"picture"`
	CreatedAt   time.Time `json:"created_at"`
}

// Label is what the CLI prompt shows for the account.
func (a *Account) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}

// ProfileUpdate only sends the fields that are set.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Picture     *string `json:"picture,omitempty"`
}

type PictureUpload struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

type Academic struct {
	ID          string `json:"id,omitempty"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Link         string   `json:"link"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image,omitempty"`
}

type Message struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
