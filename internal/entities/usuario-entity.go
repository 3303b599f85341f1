package entities

import "clinical-service/pkg/types"

const (
	RolAdmin      = "admin"
	RolSupervisor = "supervisor"
	RolTecnico    = "tecnico"
)

type Usuario struct {
	ID           uint64 `json:"id" db:"id"`
	Nombre       string `json:"nombre" db:"nombre"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Rol          string `json:"rol" db:"rol"`
	Activo       bool   `json:"activo" db:"activo"`

	types.BaseEntity
}
