package domain

// ErrorResponse es la estructura estandarizada para respuestas de error de la API.
// @Description Estructura estandarizada para respuestas de error de la API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"El repertorio es obligatorio."`
}
