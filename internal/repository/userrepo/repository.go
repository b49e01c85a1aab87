package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
)

// uniqueViolation es el código de error de PostgreSQL para violación de
// restricción UNIQUE (el índice único sobre users.email).
const uniqueViolation = "23505"

// UserRepository implementa la interfaz domain.UserRepository sobre PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository crea una nueva instancia del repositorio de usuarios.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save inserta un nuevo usuario. El ID y los timestamps se asignan aquí:
// el servicio entrega el usuario con email, nombre y hash ya resueltos.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	const insertSQL = `INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, apperror.NewConflictError(
				fmt.Sprintf("El email '%s' ya está registrado.", user.Email),
			)
		}
		r.logger.Error("Fallo al insertar usuario en la DB.", err)
		return domain.User{}, apperror.NewDBError("fallo al insertar usuario", err)
	}

	r.logger.Info("Usuario guardado en el repositorio.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// FindByEmail busca un usuario por su dirección de email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, email, COALESCE(name, ''), password_hash, created_at, updated_at
	               FROM users WHERE email = $1`

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(
				fmt.Sprintf("No existe un usuario con el email '%s'.", email),
			)
		}
		r.logger.Error("Fallo al buscar usuario por email en la DB.", err)
		return domain.User{}, apperror.NewDBError("fallo al buscar usuario por email", err)
	}

	return user, nil
}

// FindByID busca un usuario por su ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, email, COALESCE(name, ''), password_hash, created_at, updated_at
	               FROM users WHERE id = $1`

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError("Usuario no encontrado.")
		}
		r.logger.Error("Fallo al buscar usuario por ID en la DB.", err)
		return domain.User{}, apperror.NewDBError("fallo al buscar usuario por ID", err)
	}

	return user, nil
}

// FindAll devuelve todos los usuarios ordenados del más reciente al más antiguo.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, email, COALESCE(name, ''), password_hash, created_at, updated_at
	               FROM users ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Fallo al listar usuarios en la DB.", err)
		return nil, apperror.NewDBError("fallo al listar usuarios", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDBError("fallo al mapear usuario", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("fallo al iterar usuarios", err)
	}

	return users, nil
}

// Update persiste email, nombre y (si cambió) el hash de contraseña.
// El ID es la clave de identidad y nunca se reescribe.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()

	const updateSQL = `UPDATE users
	                   SET email = $1, name = $2, password_hash = $3, updated_at = $4
	                   WHERE id = $5`

	result, err := r.DB.ExecContext(
		ctxTimeout,
		updateSQL,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, apperror.NewConflictError(
				fmt.Sprintf("El email '%s' ya está registrado.", user.Email),
			)
		}
		r.logger.Error("Fallo al actualizar usuario en la DB.", err)
		return domain.User{}, apperror.NewDBError("fallo al actualizar usuario", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.User{}, apperror.NewDBError("fallo al leer filas afectadas", err)
	}
	if affected == 0 {
		return domain.User{}, apperror.NewNotFoundError("Usuario no encontrado.")
	}

	return user, nil
}

// Delete elimina un usuario por ID. La verificación de procesos asociados es
// responsabilidad del servicio; la FK de processes.user_id respalda la regla
// a nivel de la base.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Fallo al eliminar usuario en la DB.", err)
		return apperror.NewDBError("fallo al eliminar usuario", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("fallo al leer filas afectadas", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Usuario no encontrado.")
	}

	r.logger.Info("Usuario eliminado del repositorio.", map[string]interface{}{"user_id": id})
	return nil
}

// isUniqueViolation detecta la violación del índice único de email usando el
// error tipado del driver pq.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
