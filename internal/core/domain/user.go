package domain

import "time"

type User struct {
	ID           uint64
	Username     string
	Email        *string
	PasswordHash string
	FullName     *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type CreateUserInput struct {
	Username     string
	Email        *string
	PasswordHash string
	FullName     *string
}

type RegisterInput struct {
	Username string
	Email    *string
	Password string
	FullName *string
}
