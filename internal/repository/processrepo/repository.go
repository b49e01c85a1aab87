package processrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/cache"
	"notaria/internal/pkg/logger"
)

// processCacheKey es la clave de cache por proceso.
const processCacheKey = "process:%s"

// ProcessRepository implementa domain.ProcessRepository sobre PostgreSQL con
// cache-aside en Redis para las lecturas por ID.
type ProcessRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProcessRepository crea una nueva instancia del repositorio de procesos.
func NewProcessRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProcessRepository {
	return &ProcessRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Save inserta un nuevo proceso. El servicio ya fijó estado y dueño; aquí
// solo se asignan ID y timestamps.
func (r *ProcessRepository) Save(ctx context.Context, process domain.Process) (domain.Process, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	process.ID = uuid.NewString()
	process.CreatedAt = time.Now().UTC()
	process.UpdatedAt = process.CreatedAt

	const insertSQL = `INSERT INTO processes
	    (id, repertorio, caratula, cliente, email_cliente, estado, user_id, created_at, updated_at)
	    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		process.ID,
		process.Repertorio,
		process.Caratula,
		process.Cliente,
		process.EmailCliente,
		process.Estado,
		process.UserID,
		process.CreatedAt,
		process.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Fallo al insertar proceso en la DB.", err)
		return domain.Process{}, apperror.NewDBError("fallo al insertar proceso", err)
	}

	r.logger.Info("Proceso guardado en el repositorio.", map[string]interface{}{
		"process_id": process.ID,
		"user_id":    process.UserID,
	})
	return process, nil
}

// FindByIDForOwner busca un proceso por ID acotado al dueño, con estrategia
// cache-aside. Un hit de cache igualmente verifica el dueño: la clave es por
// proceso, no por (proceso, usuario), y el cache no debe saltarse el control
// de acceso.
func (r *ProcessRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (domain.Process, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(processCacheKey, id)
	var process domain.Process

	// 1. Intento de lectura del cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &process) == nil {
			if process.UserID != ownerID {
				return domain.Process{}, notFound()
			}
			return process, nil
		}
		// Entrada indecodificable: se ignora y se sigue a la DB.
	} else if err != cache.ErrCacheMiss {
		// Falla real del cache (e.g. conexión perdida): se registra y se
		// continúa contra la DB, el cache no es fuente de verdad.
		r.logger.Warn("Fallo al leer proceso del cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// 2. Búsqueda en la base de datos
	const query = `SELECT id, repertorio, COALESCE(caratula, ''), COALESCE(cliente, ''),
	                      COALESCE(email_cliente, ''), estado, user_id, created_at, updated_at
	               FROM processes WHERE id = $1 AND user_id = $2`

	err = r.DB.QueryRowContext(ctxTimeout, query, id, ownerID).Scan(
		&process.ID,
		&process.Repertorio,
		&process.Caratula,
		&process.Cliente,
		&process.EmailCliente,
		&process.Estado,
		&process.UserID,
		&process.CreatedAt,
		&process.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Process{}, notFound()
		}
		r.logger.Error("Fallo al buscar proceso en la DB.", err)
		return domain.Process{}, apperror.NewDBError("fallo al buscar proceso", err)
	}

	// 3. Poblar el cache para próximas lecturas
	if processJSON, marshalErr := json.Marshal(process); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, processJSON, r.CacheTTL)
	}

	return process, nil
}

// FindAllByOwner devuelve los procesos del dueño ordenados por fecha de
// creación descendente. Con pausedOnly en false se excluyen los Pausado
// (filtro de visibilidad del listado principal); en true se devuelven solo
// esos.
func (r *ProcessRepository) FindAllByOwner(ctx context.Context, ownerID string, pausedOnly bool) ([]domain.Process, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, repertorio, COALESCE(caratula, ''), COALESCE(cliente, ''),
	                 COALESCE(email_cliente, ''), estado, user_id, created_at, updated_at
	          FROM processes WHERE user_id = $1 AND estado <> $2
	          ORDER BY created_at DESC`
	if pausedOnly {
		query = `SELECT id, repertorio, COALESCE(caratula, ''), COALESCE(cliente, ''),
		                COALESCE(email_cliente, ''), estado, user_id, created_at, updated_at
		         FROM processes WHERE user_id = $1 AND estado = $2
		         ORDER BY created_at DESC`
	}

	rows, err := r.DB.QueryContext(ctxTimeout, query, ownerID, domain.EstadoPausado)
	if err != nil {
		r.logger.Error("Fallo al listar procesos en la DB.", err)
		return nil, apperror.NewDBError("fallo al listar procesos", err)
	}
	defer rows.Close()

	processes := []domain.Process{}
	for rows.Next() {
		var process domain.Process
		if err := rows.Scan(
			&process.ID,
			&process.Repertorio,
			&process.Caratula,
			&process.Cliente,
			&process.EmailCliente,
			&process.Estado,
			&process.UserID,
			&process.CreatedAt,
			&process.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDBError("fallo al mapear proceso", err)
		}
		processes = append(processes, process)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("fallo al iterar procesos", err)
	}

	return processes, nil
}

// Update reescribe los campos editables del proceso. El predicado
// id + user_id es a la vez control de acceso y check-and-set: cero filas
// afectadas significa ausencia o dueño distinto, y ambos casos responden
// igual hacia afuera.
func (r *ProcessRepository) Update(ctx context.Context, process domain.Process) (domain.Process, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	process.UpdatedAt = time.Now().UTC()

	const updateSQL = `UPDATE processes
	    SET repertorio = $1, caratula = $2, cliente = $3, email_cliente = $4,
	        estado = $5, updated_at = $6
	    WHERE id = $7 AND user_id = $8`

	result, err := r.DB.ExecContext(
		ctxTimeout,
		updateSQL,
		process.Repertorio,
		process.Caratula,
		process.Cliente,
		process.EmailCliente,
		process.Estado,
		process.UpdatedAt,
		process.ID,
		process.UserID,
	)

	if err != nil {
		r.logger.Error("Fallo al actualizar proceso en la DB.", err)
		return domain.Process{}, apperror.NewDBError("fallo al actualizar proceso", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Process{}, apperror.NewDBError("fallo al leer filas afectadas", err)
	}
	if affected == 0 {
		return domain.Process{}, notFound()
	}

	r.invalidate(ctxTimeout, process.ID)
	return process, nil
}

// UpdateEstado reescribe solo el estado y updated_at, con el mismo predicado
// de dueño, y devuelve el registro actualizado vía RETURNING.
func (r *ProcessRepository) UpdateEstado(ctx context.Context, id, ownerID string, estado domain.Estado) (domain.Process, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE processes
	    SET estado = $1, updated_at = $2
	    WHERE id = $3 AND user_id = $4
	    RETURNING id, repertorio, COALESCE(caratula, ''), COALESCE(cliente, ''),
	              COALESCE(email_cliente, ''), estado, user_id, created_at, updated_at`

	var process domain.Process
	err := r.DB.QueryRowContext(ctxTimeout, updateSQL, estado, time.Now().UTC(), id, ownerID).Scan(
		&process.ID,
		&process.Repertorio,
		&process.Caratula,
		&process.Cliente,
		&process.EmailCliente,
		&process.Estado,
		&process.UserID,
		&process.CreatedAt,
		&process.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Process{}, notFound()
		}
		r.logger.Error("Fallo al actualizar estado del proceso en la DB.", err)
		return domain.Process{}, apperror.NewDBError("fallo al actualizar estado", err)
	}

	r.invalidate(ctxTimeout, id)

	r.logger.Info("Estado de proceso actualizado.", map[string]interface{}{
		"process_id": id,
		"estado":     string(estado),
	})
	return process, nil
}

// Delete elimina el proceso del dueño. Borrado duro, sin recuperación.
func (r *ProcessRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM processes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		r.logger.Error("Fallo al eliminar proceso en la DB.", err)
		return apperror.NewDBError("fallo al eliminar proceso", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("fallo al leer filas afectadas", err)
	}
	if affected == 0 {
		return notFound()
	}

	r.invalidate(ctxTimeout, id)

	r.logger.Info("Proceso eliminado del repositorio.", map[string]interface{}{"process_id": id})
	return nil
}

// CountByOwner cuenta los procesos del dueño. Lo usa el servicio de usuarios
// para bloquear el borrado de una cuenta con procesos asociados.
func (r *ProcessRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM processes WHERE user_id = $1`, ownerID).Scan(&count)
	if err != nil {
		r.logger.Error("Fallo al contar procesos en la DB.", err)
		return 0, apperror.NewDBError("fallo al contar procesos", err)
	}

	return count, nil
}

// invalidate elimina la entrada de cache del proceso tras una mutación.
func (r *ProcessRepository) invalidate(ctx context.Context, id string) {
	key := fmt.Sprintf(processCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Fallo al invalidar cache de proceso.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// notFound construye el error con el que se enmascara tanto la ausencia como
// el mismatch de dueño. El mensaje es el mismo en ambos casos a propósito.
func notFound() error {
	return apperror.NewNotFoundError("Proceso no encontrado o sin permiso para acceder a él.")
}
