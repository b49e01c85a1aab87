package process

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
	"notaria/internal/pkg/middleware"
)

// ProcessService define el contrato que el Handler espera de la capa de
// servicio.
type ProcessService interface {
	Create(ctx context.Context, callerID string, input domain.ProcessInput) (domain.Process, error)
	GetByID(ctx context.Context, id, callerID string) (domain.Process, error)
	ListActive(ctx context.Context, callerID string) ([]domain.Process, error)
	ListPaused(ctx context.Context, callerID string) ([]domain.Process, error)
	Update(ctx context.Context, id, callerID string, input domain.ProcessInput) (domain.Process, error)
	ChangeEstado(ctx context.Context, id, callerID string, estado domain.Estado) (domain.Process, error)
	Delete(ctx context.Context, id, callerID string) error
}

// Handler agrupa los handlers HTTP de procesos.
type Handler struct {
	Service ProcessService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y el Logger.
func NewHandler(svc ProcessService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse procesa errores del servicio y envía respuestas
// estandarizadas al cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Fallo al codificar JSON de respuesta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Error de servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Request rechazada con status %d. Categoría: %s", status, category),
			map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// callerFromContext extrae las claims del middleware; sin claims no hay
// request válida en estas rutas.
func (h *Handler) callerFromContext(w http.ResponseWriter, r *http.Request) (middleware.UserClaims, bool) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil,
			apperror.NewUnauthorizedError("Autenticación requerida."), http.StatusOK)
		return middleware.UserClaims{}, false
	}
	return claims, true
}

// CollectionHandler atiende /api/processes.
// GET lista los procesos activos (no pausados) del caller; POST crea uno.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listActive(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler atiende /api/processes/{id}, /api/processes/{id}/estado y
// /api/processes/paused, extrayendo los segmentos de la ruta.
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	// Normaliza y divide: ["api", "processes", ...resto]
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 3 {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Formato de URL inválido o ID ausente."), http.StatusOK)
		return
	}

	// Sub-colección de pausados: GET /api/processes/paused
	if len(segments) == 3 && segments[2] == "paused" {
		if r.Method != http.MethodGet {
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
			return
		}
		h.listPaused(w, r)
		return
	}

	processID := segments[2]

	// PUT /api/processes/{id}/estado
	if len(segments) == 4 && segments[3] == "estado" {
		if r.Method != http.MethodPut {
			http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
			return
		}
		h.changeEstado(w, r, processID)
		return
	}

	if len(segments) != 3 {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Formato de URL inválido."), http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getByID(w, r, processID)
	case http.MethodPut:
		h.update(w, r, processID)
	case http.MethodDelete:
		h.delete(w, r, processID)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// create maneja POST /api/processes.
// @Summary Crea un nuevo proceso notarial
// @Description Crea un proceso para el usuario autenticado. El estado inicial es siempre Iniciado.
// @Tags processes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param process body domain.ProcessInput true "Datos del proceso (repertorio obligatorio)"
// @Success 201 {object} domain.Process "Proceso creado"
// @Failure 400 {object} domain.ErrorResponse "Repertorio ausente o payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente o inválido"
// @Router /api/processes [post]
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	var input domain.ProcessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	created, err := h.Service.Create(r.Context(), claims.UserID, input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// listActive maneja GET /api/processes.
// @Summary Lista los procesos activos del usuario
// @Description Devuelve los procesos del usuario autenticado cuyo estado no es Pausado, del más reciente al más antiguo.
// @Tags processes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Process
// @Failure 401 {object} domain.ErrorResponse
// @Router /api/processes [get]
func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	processes, err := h.Service.ListActive(r.Context(), claims.UserID)
	h.handleServiceResponse(w, r, processes, err, http.StatusOK)
}

// listPaused maneja GET /api/processes/paused.
// @Summary Lista los procesos pausados del usuario
// @Tags processes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Process
// @Failure 401 {object} domain.ErrorResponse
// @Router /api/processes/paused [get]
func (h *Handler) listPaused(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	processes, err := h.Service.ListPaused(r.Context(), claims.UserID)
	h.handleServiceResponse(w, r, processes, err, http.StatusOK)
}

// getByID maneja GET /api/processes/{id}.
// @Summary Obtiene un proceso por ID
// @Description Devuelve el proceso solo si pertenece al usuario autenticado; en cualquier otro caso responde 404.
// @Tags processes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del proceso (UUID)"
// @Success 200 {object} domain.Process
// @Failure 404 {object} domain.ErrorResponse "Proceso inexistente o de otro usuario"
// @Router /api/processes/{id} [get]
func (h *Handler) getByID(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	process, err := h.Service.GetByID(r.Context(), id, claims.UserID)
	h.handleServiceResponse(w, r, process, err, http.StatusOK)
}

// update maneja PUT /api/processes/{id}.
// @Summary Actualiza los campos de un proceso
// @Tags processes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del proceso (UUID)"
// @Param process body domain.ProcessInput true "Campos a actualizar"
// @Success 200 {object} domain.Process
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/processes/{id} [put]
func (h *Handler) update(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	var input domain.ProcessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, claims.UserID, input)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// changeEstado maneja PUT /api/processes/{id}/estado.
// @Summary Cambia el estado de un proceso
// @Description Aplica una transición de estado. Cualquier estado del enum puede moverse a cualquier otro.
// @Tags processes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del proceso (UUID)"
// @Param estado body domain.EstadoChange true "Nuevo estado"
// @Success 200 {object} domain.Process
// @Failure 400 {object} domain.ErrorResponse "Estado fuera del enum"
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/processes/{id}/estado [put]
func (h *Handler) changeEstado(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	var change domain.EstadoChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.ChangeEstado(r.Context(), id, claims.UserID, change.Estado)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// delete maneja DELETE /api/processes/{id}.
// @Summary Elimina un proceso
// @Description Borrado definitivo, sin recuperación.
// @Tags processes
// @Security BearerAuth
// @Param id path string true "ID del proceso (UUID)"
// @Success 204 "Proceso eliminado"
// @Failure 404 {object} domain.ErrorResponse
// @Router /api/processes/{id} [delete]
func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.callerFromContext(w, r)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, claims.UserID)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
