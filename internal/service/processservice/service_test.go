package processservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
	"notaria/internal/service/processservice"
)

// MockProcessRepository es una implementación mock de domain.ProcessRepository.
type MockProcessRepository struct {
	mock.Mock
}

func (m *MockProcessRepository) Save(ctx context.Context, process domain.Process) (domain.Process, error) {
	args := m.Called(ctx, process)
	return args.Get(0).(domain.Process), args.Error(1)
}

func (m *MockProcessRepository) FindByIDForOwner(ctx context.Context, id, ownerID string) (domain.Process, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(domain.Process), args.Error(1)
}

func (m *MockProcessRepository) FindAllByOwner(ctx context.Context, ownerID string, pausedOnly bool) ([]domain.Process, error) {
	args := m.Called(ctx, ownerID, pausedOnly)
	return args.Get(0).([]domain.Process), args.Error(1)
}

func (m *MockProcessRepository) Update(ctx context.Context, process domain.Process) (domain.Process, error) {
	args := m.Called(ctx, process)
	return args.Get(0).(domain.Process), args.Error(1)
}

func (m *MockProcessRepository) UpdateEstado(ctx context.Context, id, ownerID string, estado domain.Estado) (domain.Process, error) {
	args := m.Called(ctx, id, ownerID, estado)
	return args.Get(0).(domain.Process), args.Error(1)
}

func (m *MockProcessRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockProcessRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func newService(repo domain.ProcessRepository) *processservice.Service {
	return processservice.NewService(repo, logger.NewLogger("error"))
}

// TestCreate_FuerzaEstadoIniciado verifica que el estado del payload se
// ignora: todo proceso nace en Iniciado y el dueño es siempre el caller.
func TestCreate_FuerzaEstadoIniciado(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)
	callerID := uuid.NewString()

	input := domain.ProcessInput{
		Repertorio: "REP-001",
		Caratula:   "Compraventa",
		Estado:     domain.EstadoTerminado, // Debe ser ignorado
	}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Process) bool {
		return p.Estado == domain.EstadoIniciado && p.UserID == callerID && p.Repertorio == "REP-001"
	})).Return(domain.Process{
		ID:         uuid.NewString(),
		Repertorio: "REP-001",
		Caratula:   "Compraventa",
		Estado:     domain.EstadoIniciado,
		UserID:     callerID,
	}, nil)

	created, err := svc.Create(context.Background(), callerID, input)

	assert.NoError(t, err)
	assert.Equal(t, domain.EstadoIniciado, created.Estado)
	assert.Equal(t, callerID, created.UserID)
	mockRepo.AssertExpectations(t)
}

// TestCreate_RepertorioVacio verifica el rechazo de repertorios vacíos o de
// solo espacios, sin tocar el repositorio.
func TestCreate_RepertorioVacio(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	for _, repertorio := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), uuid.NewString(), domain.ProcessInput{Repertorio: repertorio})

		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}

	mockRepo.AssertNotCalled(t, "Save")
}

// TestChangeEstado_EstadoInvalido verifica que un valor fuera del enum se
// rechaza con error de validación antes de llegar al repositorio.
func TestChangeEstado_EstadoInvalido(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	_, err := svc.ChangeEstado(context.Background(), uuid.NewString(), uuid.NewString(), "Archivado")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "UpdateEstado")
}

// TestChangeEstado_EstadoVacio verifica que el estado es obligatorio.
func TestChangeEstado_EstadoVacio(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	_, err := svc.ChangeEstado(context.Background(), uuid.NewString(), uuid.NewString(), "")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "UpdateEstado")
}

// TestChangeEstado_OtroDueno verifica que el mismatch de dueño se responde
// como NotFound, indistinguible de la ausencia del proceso.
func TestChangeEstado_OtroDueno(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	processID := uuid.NewString()
	attackerID := uuid.NewString()

	// El repositorio no encuentra filas con ese (id, user_id): mismo NotFound
	// que si el proceso no existiera.
	mockRepo.On("UpdateEstado", mock.Anything, processID, attackerID, domain.EstadoCancelado).
		Return(domain.Process{}, apperror.NewNotFoundError("Proceso no encontrado o sin permiso para acceder a él."))

	_, err := svc.ChangeEstado(context.Background(), processID, attackerID, domain.EstadoCancelado)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestChangeEstado_Idempotente verifica que repetir la misma transición no
// falla: la segunda llamada reescribe el mismo valor y devuelve el mismo
// estado final.
func TestChangeEstado_Idempotente(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	processID := uuid.NewString()
	ownerID := uuid.NewString()
	terminado := domain.Process{ID: processID, UserID: ownerID, Estado: domain.EstadoTerminado}

	mockRepo.On("UpdateEstado", mock.Anything, processID, ownerID, domain.EstadoTerminado).
		Return(terminado, nil).Twice()

	first, err := svc.ChangeEstado(context.Background(), processID, ownerID, domain.EstadoTerminado)
	assert.NoError(t, err)

	second, err := svc.ChangeEstado(context.Background(), processID, ownerID, domain.EstadoTerminado)
	assert.NoError(t, err)

	assert.Equal(t, first.Estado, second.Estado)
	mockRepo.AssertExpectations(t)
}

// TestChangeEstado_TransicionLibre verifica que no hay grafo de transiciones:
// incluso Cancelado → Iniciado es válido.
func TestChangeEstado_TransicionLibre(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	processID := uuid.NewString()
	ownerID := uuid.NewString()

	mockRepo.On("UpdateEstado", mock.Anything, processID, ownerID, domain.EstadoIniciado).
		Return(domain.Process{ID: processID, UserID: ownerID, Estado: domain.EstadoIniciado}, nil)

	updated, err := svc.ChangeEstado(context.Background(), processID, ownerID, domain.EstadoIniciado)

	assert.NoError(t, err)
	assert.Equal(t, domain.EstadoIniciado, updated.Estado)
	mockRepo.AssertExpectations(t)
}

// TestListActive_ExcluyePausados verifica que el listado principal pide al
// repositorio la vista sin pausados, y el de pausados la vista inversa.
func TestListActive_ExcluyePausados(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)
	ownerID := uuid.NewString()

	active := []domain.Process{
		{ID: uuid.NewString(), Estado: domain.EstadoIniciado, UserID: ownerID},
		{ID: uuid.NewString(), Estado: domain.EstadoVigente, UserID: ownerID},
	}
	paused := []domain.Process{
		{ID: uuid.NewString(), Estado: domain.EstadoPausado, UserID: ownerID},
	}

	mockRepo.On("FindAllByOwner", mock.Anything, ownerID, false).Return(active, nil)
	mockRepo.On("FindAllByOwner", mock.Anything, ownerID, true).Return(paused, nil)

	gotActive, err := svc.ListActive(context.Background(), ownerID)
	assert.NoError(t, err)
	for _, p := range gotActive {
		assert.NotEqual(t, domain.EstadoPausado, p.Estado)
	}

	gotPaused, err := svc.ListPaused(context.Background(), ownerID)
	assert.NoError(t, err)
	for _, p := range gotPaused {
		assert.Equal(t, domain.EstadoPausado, p.Estado)
	}

	mockRepo.AssertExpectations(t)
}

// TestGetByID_IDInvalido verifica la validación de formato del ID.
func TestGetByID_IDInvalido(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	_, err := svc.GetByID(context.Background(), "no-es-un-uuid", uuid.NewString())

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByIDForOwner")
}

// TestDelete_OtroDueno verifica que el borrado de un proceso ajeno responde
// NotFound sin eliminar nada.
func TestDelete_OtroDueno(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	processID := uuid.NewString()
	attackerID := uuid.NewString()

	mockRepo.On("Delete", mock.Anything, processID, attackerID).
		Return(apperror.NewNotFoundError("Proceso no encontrado o sin permiso para acceder a él."))

	err := svc.Delete(context.Background(), processID, attackerID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestUpdate_ConservaEstadoSiNoViene verifica que un PUT sin estado mantiene
// el estado actual del proceso.
func TestUpdate_ConservaEstadoSiNoViene(t *testing.T) {
	mockRepo := new(MockProcessRepository)
	svc := newService(mockRepo)

	processID := uuid.NewString()
	ownerID := uuid.NewString()
	current := domain.Process{ID: processID, UserID: ownerID, Repertorio: "REP-001", Estado: domain.EstadoVigente}

	mockRepo.On("FindByIDForOwner", mock.Anything, processID, ownerID).Return(current, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Process) bool {
		return p.Estado == domain.EstadoVigente && p.Repertorio == "REP-002"
	})).Return(domain.Process{ID: processID, UserID: ownerID, Repertorio: "REP-002", Estado: domain.EstadoVigente}, nil)

	updated, err := svc.Update(context.Background(), processID, ownerID, domain.ProcessInput{Repertorio: "REP-002"})

	assert.NoError(t, err)
	assert.Equal(t, domain.EstadoVigente, updated.Estado)
	mockRepo.AssertExpectations(t)
}
