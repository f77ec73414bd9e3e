package repository

import (
	"context"
	"time"
)

// Roles conocidos por el sistema.
const (
	RoleAdmin     = "admin"
	RoleMarketing = "marketing"
	RoleDealer    = "dealer"
	RoleUser      = "user"
)

// Profile agrupa atributos libres del usuario.
type Profile struct {
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Country string `json:"country"`
}

// User representa una cuenta del Identity Store.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	Roles        []string   `json:"roles"`
	PasswordHash string     `json:"-"`
	Profile      Profile    `json:"profile"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// HasRole indica si el usuario tiene el rol (case-insensitive).
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if equalFoldTrim(r, role) {
			return true
		}
	}
	return false
}

// CreateUserInput contiene los datos para crear un usuario.
// Email se guarda normalizado.
type CreateUserInput struct {
	Email        string
	DisplayName  string
	Roles        []string
	PasswordHash string
	Profile      Profile
}

// UserPatch es una actualización parcial. Los campos nil no se tocan.
type UserPatch struct {
	DisplayName  *string
	Roles        []string // nil = sin cambios
	PasswordHash *string
	Profile      *Profile
}

// UserFilter filtra el listado paginado de usuarios.
type UserFilter struct {
	Query  string // busca en email y displayName
	Limit  int
	Cursor string // id del último elemento de la página anterior
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// GetByID obtiene un usuario activo por ID.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail busca por email sin distinguir mayúsculas.
	// Los usuarios eliminados (soft delete) no se devuelven.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create crea un usuario. Retorna ErrConflict si el email ya existe.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// Update aplica un patch parcial y retorna el usuario actualizado.
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)

	// List retorna una página ordenada por id y el cursor siguiente ("" si no hay más).
	List(ctx context.Context, filter UserFilter) ([]User, string, error)

	// SoftDelete marca el usuario como eliminado.
	SoftDelete(ctx context.Context, id string) error

	// Count retorna la cantidad de usuarios activos.
	Count(ctx context.Context) (int, error)
}
