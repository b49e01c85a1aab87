package domain

import (
	"context"
	"time"
)

// Estado es el estado de ciclo de vida de un proceso notarial.
type Estado string

// Estados posibles de un proceso. Todo proceso nace en Iniciado y puede
// moverse libremente entre estados: el sistema no impone un grafo de
// transiciones (Terminado → Iniciado es válido). Esa permisividad es
// intencional, no un descuido.
const (
	EstadoIniciado   Estado = "Iniciado"
	EstadoVigente    Estado = "Vigente"
	EstadoEnRevision Estado = "EnRevision"
	EstadoTerminado  Estado = "Terminado"
	EstadoReparado   Estado = "Reparado"
	EstadoCancelado  Estado = "Cancelado"
	EstadoPausado    Estado = "Pausado"
)

// Estados devuelve el conjunto completo de estados válidos.
func Estados() []Estado {
	return []Estado{
		EstadoIniciado,
		EstadoVigente,
		EstadoEnRevision,
		EstadoTerminado,
		EstadoReparado,
		EstadoCancelado,
		EstadoPausado,
	}
}

// IsValid indica si el valor pertenece al conjunto de estados enumerados.
func (e Estado) IsValid() bool {
	switch e {
	case EstadoIniciado, EstadoVigente, EstadoEnRevision, EstadoTerminado,
		EstadoReparado, EstadoCancelado, EstadoPausado:
		return true
	}
	return false
}

// Process representa el expediente notarial (la entidad principal).
// Pertenece a exactamente un usuario; UserID es inmutable tras la creación.
type Process struct {
	ID           string    `json:"id"`
	Repertorio   string    `json:"repertorio"`
	Caratula     string    `json:"caratula,omitempty"`
	Cliente      string    `json:"cliente,omitempty"`
	EmailCliente string    `json:"email_cliente,omitempty"`
	Estado       Estado    `json:"estado"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProcessInput representa el payload de creación/actualización de un proceso.
// Cualquier estado enviado en la creación se ignora: el servicio siempre
// fuerza Iniciado.
type ProcessInput struct {
	Repertorio   string `json:"repertorio"`
	Caratula     string `json:"caratula,omitempty"`
	Cliente      string `json:"cliente,omitempty"`
	EmailCliente string `json:"email_cliente,omitempty"`
	Estado       Estado `json:"estado,omitempty"`
}

// EstadoChange representa el payload de PUT /api/processes/{id}/estado.
type EstadoChange struct {
	Estado Estado `json:"estado"`
}

// ProcessRepository define el contrato de persistencia para los procesos.
// Todas las búsquedas y mutaciones están acotadas al dueño (ownerID): la
// cláusula WHERE id = $1 AND user_id = $2 es a la vez el control de acceso
// y el check-and-set seguro frente a concurrencia.
type ProcessRepository interface {
	Save(ctx context.Context, process Process) (Process, error)
	FindByIDForOwner(ctx context.Context, id, ownerID string) (Process, error)
	FindAllByOwner(ctx context.Context, ownerID string, pausedOnly bool) ([]Process, error)
	Update(ctx context.Context, process Process) (Process, error)
	UpdateEstado(ctx context.Context, id, ownerID string, estado Estado) (Process, error)
	Delete(ctx context.Context, id, ownerID string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// ProcessService define el contrato de lógica de negocio para los procesos.
type ProcessService interface {
	Create(ctx context.Context, callerID string, input ProcessInput) (Process, error)
	GetByID(ctx context.Context, id, callerID string) (Process, error)
	ListActive(ctx context.Context, callerID string) ([]Process, error)
	ListPaused(ctx context.Context, callerID string) ([]Process, error)
	Update(ctx context.Context, id, callerID string, input ProcessInput) (Process, error)
	ChangeEstado(ctx context.Context, id, callerID string, estado Estado) (Process, error)
	Delete(ctx context.Context, id, callerID string) error
}
