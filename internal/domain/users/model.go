package users

import "time"

// User es una cuenta. PasswordHash es bcrypt; nunca se serializa.
type User struct {
	ID           int64
	Email        string
	PasswordHash string

	FirstName string
	LastName  string
	Phone     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate lleva solo los campos a tocar (nil = no cambiar).
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	PasswordHash *string
	UpdatedAt    time.Time
}
