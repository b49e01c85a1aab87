package domain

import (
	"context"
	"time"
)

// User representa la entidad de usuario del sistema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // Oculta el hash de la contraseña en el JSON de respuesta
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRegistration representa el payload de entrada para el registro.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// UserUpdate representa el payload de actualización del perfil.
// Password es opcional: si viene vacío, la contraseña no cambia.
type UserUpdate struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResponse agrupa el token emitido junto al usuario autenticado.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UserRepository define el contrato de persistencia para la entidad User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id string) error
}

// UserService define el contrato de lógica de negocio para la entidad User.
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, callerID, id string, update UserUpdate) (User, error)
	DeleteAccount(ctx context.Context, callerID, id string) error
}
