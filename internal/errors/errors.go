package errors

import (
	"fmt"
	"net/http"
)

// AppError es la interfaz central para todos los errores tipados de la
// aplicación. Permite que la capa externa (Handler) acceda a la categoría
// del error y al código HTTP sugerido sin conocer el tipo concreto.
type AppError interface {
	Error() string    // Implementa la interfaz error estándar de Go
	Category() string // Categoría del error (e.g. "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para el Handler
	Unwrap() error    // Permite encapsular el error subyacente
}

// --- Errores de dominio ---

// ValidationError representa fallas de validación de datos de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Error de validación: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError crea un nuevo error de validación.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa una falla de autenticación: token ausente,
// inválido o expirado, o credenciales incorrectas en el login.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("No autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError crea un nuevo error de autenticación.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa un acceso denegado a un recurso ajeno cuando el
// recurso no necesita ocultar su existencia (operaciones self-only de User).
// Para los procesos la política es distinta: el mismatch de dueño se enmascara
// como NotFoundError para no revelar registros de otros usuarios.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acceso denegado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError crea un nuevo error de acceso denegado.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// NotFoundError representa la ausencia de un recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso no encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError crea un nuevo error de recurso no encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa un conflicto con una regla de negocio
// (e.g. email duplicado, borrado bloqueado por procesos asociados).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflicto: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError crea un nuevo error de conflicto.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Errores de infraestructura ---

// InternalError representa fallas inesperadas del servidor, servicio o
// repositorio. El mensaje detallado nunca llega al cliente: el Handler lo
// registra en el log y responde con un mensaje genérico.
type InternalError struct {
	Msg string
	Err error // Error original subyacente (e.g. error del driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Error interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError crea un error de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError es un atajo para crear un InternalError específico de fallas de DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para el Handler (traducción final) ---

// MapToHTTPStatus recibe un error y lo traduce a código HTTP, categoría y
// mensaje de respuesta. Para errores 5xx el mensaje se reemplaza por uno
// genérico: el detalle queda solo en los logs del servidor.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		if appErr.HTTPStatus() >= 500 {
			return appErr.HTTPStatus(), appErr.Category(), "Ocurrió un error inesperado. Intente nuevamente más tarde."
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Error no tipado: se trata como interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocurrió un error inesperado. Intente nuevamente más tarde."
}
