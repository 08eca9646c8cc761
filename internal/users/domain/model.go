package domain

import "time"

// User is an account that can own projects and enroll in courses.
// The ID never changes once assigned by the store.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
