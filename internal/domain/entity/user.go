package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleConsultor = "consultor"
	RoleCliente   = "cliente"
)

// ValidRole indica si el rol es uno de los admitidos por el portal.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleConsultor || r == RoleCliente
}

// User representa un usuario del portal. Los usuarios con rol cliente pertenecen a una empresa;
// admin y consultor pueden no tenerla (EmpresaID vacío).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string // admin, consultor, cliente
	EmpresaID    string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
