package entity

import "time"

type User struct {
	UserID       string    `json:"user_id" db:"user_id"`
	TenantID     string    `json:"tenant_id" db:"tenant_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Guest        bool      `json:"guest" db:"guest"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
