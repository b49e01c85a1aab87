package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
)

// minPasswordLength es el largo mínimo aceptado para contraseñas.
const minPasswordLength = 6

// ProcessCounter es el contrato mínimo que este servicio necesita del
// repositorio de procesos: saber cuántos procesos posee un usuario antes de
// permitir el borrado de su cuenta.
type ProcessCounter interface {
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// TokenService es el contrato de la capa de tokens (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID, email string) (string, error)
}

// UserService implementa domain.UserService: registro, login y las
// operaciones self-service del perfil.
type UserService struct {
	UserRepo     domain.UserRepository
	ProcessCount ProcessCounter
	TokenSvc     TokenService
	logger       logger.Logger
}

// NewService crea una nueva instancia del UserService.
func NewService(repo domain.UserRepository, processCount ProcessCounter, tokenSvc TokenService, log logger.Logger) *UserService {
	return &UserService{
		UserRepo:     repo,
		ProcessCount: processCount,
		TokenSvc:     tokenSvc,
		logger:       log,
	}
}

// Register registra un nuevo usuario: valida credenciales, hashea la
// contraseña con bcrypt y emite el token inicial.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error) {
	email := strings.TrimSpace(registration.Email)

	// 1. Validación de entrada
	if email == "" || registration.Password == "" {
		return domain.AuthResponse{}, apperror.NewValidationError("Email y contraseña son obligatorios.")
	}
	if !strings.Contains(email, "@") {
		return domain.AuthResponse{}, apperror.NewValidationError("El email no tiene un formato válido.")
	}
	if len(registration.Password) < minPasswordLength {
		return domain.AuthResponse{}, apperror.NewValidationError(
			fmt.Sprintf("La contraseña debe tener al menos %d caracteres.", minPasswordLength),
		)
	}

	// 2. Hashing de la contraseña
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Fallo al generar el hash de la contraseña.", err)
	}

	newUser := domain.User{
		Email:        email,
		Name:         strings.TrimSpace(registration.Name),
		PasswordHash: string(hashedPassword),
	}

	// 3. Persistencia. El repositorio traduce la violación del índice único
	// de email a un ConflictError (409).
	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	// 4. Emisión del token inicial: el registro deja la sesión iniciada.
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Fallo al generar el token de autenticación.", err)
	}

	s.logger.Info("Usuario registrado.", map[string]interface{}{"user_id": user.ID})
	return domain.AuthResponse{Token: tokenString, User: user}, nil
}

// Login autentica al usuario y emite un JWT. Tanto el email desconocido como
// la contraseña incorrecta responden el mismo 401 con el mismo mensaje, para
// no revelar qué cuentas existen.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.AuthResponse, error) {
	if email == "" || password == "" {
		return domain.AuthResponse{}, apperror.NewValidationError("Email y contraseña son obligatorios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.AuthResponse{}, apperror.NewUnauthorizedError("Credenciales inválidas.")
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError("Credenciales inválidas.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Fallo al generar el token de autenticación.", err)
	}

	s.logger.Info("Login exitoso.", map[string]interface{}{"user_id": user.ID})
	return domain.AuthResponse{Token: tokenString, User: user}, nil
}

// GetByID devuelve un usuario por su ID.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, apperror.NewValidationError("El ID de usuario es obligatorio.")
	}
	return s.UserRepo.FindByID(ctx, id)
}

// List devuelve todos los usuarios registrados.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.UserRepo.FindAll(ctx)
}

// UpdateProfile actualiza el perfil de un usuario. Regla self-only: solo el
// propio usuario puede mutar su registro; cualquier otro caller recibe 403.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, id string, update domain.UserUpdate) (domain.User, error) {
	if callerID != id {
		return domain.User{}, apperror.NewForbiddenError("Solo puedes modificar tu propio perfil.")
	}

	email := strings.TrimSpace(update.Email)
	if email == "" {
		return domain.User{}, apperror.NewValidationError("El email es obligatorio.")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, apperror.NewValidationError("El email no tiene un formato válido.")
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Email = email
	user.Name = strings.TrimSpace(update.Name)

	// Cambio de contraseña opcional: solo si viene en el payload.
	if update.Password != "" {
		if len(update.Password) < minPasswordLength {
			return domain.User{}, apperror.NewValidationError(
				fmt.Sprintf("La contraseña debe tener al menos %d caracteres.", minPasswordLength),
			)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, apperror.NewInternalError("Fallo al generar el hash de la contraseña.", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	return s.UserRepo.Update(ctx, user)
}

// DeleteAccount elimina la cuenta del propio usuario. Falla con Conflict si
// el usuario todavía posee procesos: no hay borrado en cascada.
func (s *UserService) DeleteAccount(ctx context.Context, callerID, id string) error {
	if callerID != id {
		return apperror.NewForbiddenError("Solo puedes eliminar tu propia cuenta.")
	}

	count, err := s.ProcessCount.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError(
			fmt.Sprintf("No se puede eliminar la cuenta: el usuario posee %d proceso(s). Elimínalos primero.", count),
		)
	}

	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Cuenta de usuario eliminada.", map[string]interface{}{"user_id": id})
	return nil
}
