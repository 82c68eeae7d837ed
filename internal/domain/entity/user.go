package entity

import "time"

// User usuario que puede autenticarse en la API.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	CreatedAt    time.Time
}
