package models

import "time"

// Academic is one entry of the owner's academic history.
type Academic struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	Year        string    `json:"year"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is one portfolio project entry.
type Project struct {
	ID           string    `json:"id"`
	Owner        string    `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
