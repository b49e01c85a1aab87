package processservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
)

// Service implementa domain.ProcessService: el motor de ciclo de vida de los
// procesos. Toda operación viene con el callerID resuelto por el middleware
// de autenticación, y la regla de pertenencia se aplica siempre: el dueño es
// el único actor autorizado sobre sus procesos.
type Service struct {
	repo   domain.ProcessRepository
	logger logger.Logger
}

// NewService crea una nueva instancia del servicio de procesos.
func NewService(repo domain.ProcessRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Create crea un proceso para el caller. El repertorio es obligatorio (se
// descartan espacios); el resto de los campos son opcionales. El estado
// inicial es siempre Iniciado: cualquier estado que venga en el payload se
// ignora, y el dueño es siempre el caller, sin excepción.
func (s *Service) Create(ctx context.Context, callerID string, input domain.ProcessInput) (domain.Process, error) {
	repertorio := strings.TrimSpace(input.Repertorio)
	if repertorio == "" {
		return domain.Process{}, apperror.NewValidationError("El repertorio es obligatorio.")
	}

	process := domain.Process{
		Repertorio:   repertorio,
		Caratula:     strings.TrimSpace(input.Caratula),
		Cliente:      strings.TrimSpace(input.Cliente),
		EmailCliente: strings.TrimSpace(input.EmailCliente),
		Estado:       domain.EstadoIniciado,
		UserID:       callerID,
	}

	created, err := s.repo.Save(ctx, process)
	if err != nil {
		return domain.Process{}, err
	}

	s.logger.Info("Proceso creado.", map[string]interface{}{
		"process_id": created.ID,
		"user_id":    callerID,
	})
	return created, nil
}

// GetByID devuelve un proceso del caller. Ausencia y mismatch de dueño son
// indistinguibles: ambos responden NotFound.
func (s *Service) GetByID(ctx context.Context, id, callerID string) (domain.Process, error) {
	if err := validateID(id); err != nil {
		return domain.Process{}, err
	}
	return s.repo.FindByIDForOwner(ctx, id, callerID)
}

// ListActive devuelve los procesos visibles del caller: todos menos los
// Pausado, del más reciente al más antiguo. La exclusión es un filtro de
// visibilidad, no un borrado; los pausados siguen en ListPaused.
func (s *Service) ListActive(ctx context.Context, callerID string) ([]domain.Process, error) {
	return s.repo.FindAllByOwner(ctx, callerID, false)
}

// ListPaused devuelve solo los procesos Pausado del caller.
func (s *Service) ListPaused(ctx context.Context, callerID string) ([]domain.Process, error) {
	return s.repo.FindAllByOwner(ctx, callerID, true)
}

// Update reescribe los campos editables de un proceso del caller. Si el
// payload trae estado, debe ser un miembro del enum. El dueño nunca cambia.
func (s *Service) Update(ctx context.Context, id, callerID string, input domain.ProcessInput) (domain.Process, error) {
	if err := validateID(id); err != nil {
		return domain.Process{}, err
	}

	repertorio := strings.TrimSpace(input.Repertorio)
	if repertorio == "" {
		return domain.Process{}, apperror.NewValidationError("El repertorio es obligatorio.")
	}

	estado := input.Estado
	if estado == "" {
		// Sin estado en el payload se conserva el actual.
		current, err := s.repo.FindByIDForOwner(ctx, id, callerID)
		if err != nil {
			return domain.Process{}, err
		}
		estado = current.Estado
	} else if !estado.IsValid() {
		return domain.Process{}, invalidEstado(estado)
	}

	process := domain.Process{
		ID:           id,
		Repertorio:   repertorio,
		Caratula:     strings.TrimSpace(input.Caratula),
		Cliente:      strings.TrimSpace(input.Cliente),
		EmailCliente: strings.TrimSpace(input.EmailCliente),
		Estado:       estado,
		UserID:       callerID,
	}

	return s.repo.Update(ctx, process)
}

// ChangeEstado aplica una transición de estado sobre un proceso del caller.
// La única validación de la transición es la pertenencia del nuevo valor al
// enum: cualquier estado puede moverse a cualquier otro (Terminado →
// Iniciado incluido). El sistema nunca restringió el grafo de transiciones
// y esa permisividad se conserva a propósito. Repetir la misma transición
// es idempotente: la segunda llamada vuelve a escribir el mismo valor.
func (s *Service) ChangeEstado(ctx context.Context, id, callerID string, estado domain.Estado) (domain.Process, error) {
	if err := validateID(id); err != nil {
		return domain.Process{}, err
	}
	if estado == "" {
		return domain.Process{}, apperror.NewValidationError("El estado es obligatorio.")
	}
	if !estado.IsValid() {
		return domain.Process{}, invalidEstado(estado)
	}

	return s.repo.UpdateEstado(ctx, id, callerID, estado)
}

// Delete elimina un proceso del caller. Borrado incondicional: sin
// soft-delete ni camino de recuperación.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, callerID)
}

// validateID exige un UUID bien formado antes de tocar el repositorio.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("El ID del proceso debe ser un UUID válido.")
	}
	return nil
}

// invalidEstado arma el error de estado fuera del enum listando los válidos.
func invalidEstado(estado domain.Estado) error {
	valid := make([]string, 0, len(domain.Estados()))
	for _, e := range domain.Estados() {
		valid = append(valid, string(e))
	}
	return apperror.NewValidationError(
		fmt.Sprintf("Estado '%s' no es válido. Estados permitidos: %s.", estado, strings.Join(valid, ", ")),
	)
}
