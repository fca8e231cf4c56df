package models

import "time"

// Account is the persisted identity record. PasswordHash never leaves the
// server; use Projection for anything sent over the wire.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	DisplayName  string
	Bio          string
	Picture      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountProjection is the public view of an Account.
type AccountProjection struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Picture     string    `json:"picture"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Account) Projection() AccountProjection {
	return AccountProjection{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Bio:         a.Bio,
		Picture:     a.Picture,
		CreatedAt:   a.CreatedAt,
	}
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Picture     *string `json:"picture,omitempty"`
}

// Apply copies the non-nil fields onto a.
func (u ProfileUpdate) Apply(a *Account) {
	if u.DisplayName != nil {
		a.DisplayName = *u.DisplayName
	}
	if u.Bio != nil {
		a.Bio = *u.Bio
	}
	if u.Picture != nil {
		a.Picture = *u.Picture
	}
}
