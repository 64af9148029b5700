package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleEncargado = "encargado"
	RolePlayero   = "playero"
)

// User representa un usuario del sistema. Encargados y playeros pertenecen a una Station.
type User struct {
	ID           string
	StationID    string // vacío para admin de la red
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, encargado, playero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEncargado, RolePlayero:
		return true
	}
	return false
}
