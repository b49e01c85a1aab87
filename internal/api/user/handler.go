package user

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

// UserService define el contrato que el Handler espera de la capa de servicio.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error)
	Login(ctx context.Context, email, password string) (domain.AuthResponse, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, callerID, id string, update domain.UserUpdate) (domain.User, error)
	DeleteAccount(ctx context.Context, callerID, id string) error
}

// LoginRequest representa el payload de entrada para el login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa los handlers HTTP de autenticación y usuarios.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y el Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
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

// RegisterHandler maneja POST /api/auth/register.
// @Summary Registra un nuevo usuario
// @Description Crea un usuario, hashea su contraseña y devuelve el token de sesión inicial.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciales de registro"
// @Success 201 {object} domain.AuthResponse "Usuario creado y token emitido"
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes o contraseña corta"
// @Failure 409 {object} domain.ErrorResponse "Email ya registrado"
// @Router /api/auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	resp, err := h.Service.Register(r.Context(), reg)
	h.handleServiceResponse(w, r, resp, err, http.StatusCreated)
}

// LoginHandler maneja POST /api/auth/login.
// @Summary Autentica un usuario y devuelve un JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciales del usuario"
// @Success 200 {object} domain.AuthResponse
// @Failure 401 {object} domain.ErrorResponse "Credenciales inválidas"
// @Router /api/auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	resp, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// MeHandler maneja GET /api/auth/me: devuelve el usuario dueño del token.
// Si la cuenta fue eliminada después de emitir el token, responde 404.
// @Summary Devuelve el usuario autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "La cuenta ya no existe"
// @Router /api/auth/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil,
			apperror.NewUnauthorizedError("Autenticación requerida."), http.StatusOK)
		return
	}

	user, err := h.Service.GetByID(r.Context(), claims.UserID)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// CollectionHandler atiende GET /api/users: listado de usuarios.
// @Summary Lista todos los usuarios
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Router /api/users [get]
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, users, err, http.StatusOK)
}

// ItemHandler atiende /api/users/{id}: GET, PUT (self-only) y DELETE (self-only).
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil,
			apperror.NewUnauthorizedError("Autenticación requerida."), http.StatusOK)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) != 3 || segments[2] == "" {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Formato de URL inválido o ID ausente."), http.StatusOK)
		return
	}
	userID := segments[2]

	switch r.Method {
	case http.MethodGet:
		user, err := h.Service.GetByID(r.Context(), userID)
		h.handleServiceResponse(w, r, user, err, http.StatusOK)

	case http.MethodPut:
		var update domain.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.handleServiceResponse(w, r, nil,
				apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
			return
		}
		user, err := h.Service.UpdateProfile(r.Context(), claims.UserID, userID, update)
		h.handleServiceResponse(w, r, user, err, http.StatusOK)

	case http.MethodDelete:
		err := h.Service.DeleteAccount(r.Context(), claims.UserID, userID)
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)

	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}
