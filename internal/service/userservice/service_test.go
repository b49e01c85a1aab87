package userservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"notaria/internal/domain"
	apperror "notaria/internal/errors"
	"notaria/internal/pkg/logger"
	"notaria/internal/pkg/token"
	"notaria/internal/service/userservice"
)

// MockUserRepository es una implementación mock de domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProcessCounter simula el conteo de procesos del dueño.
type MockProcessCounter struct {
	mock.Mock
}

func (m *MockProcessCounter) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

// newService arma el servicio con un TokenService real: la emisión y
// verificación de tokens es parte de lo que se quiere probar.
func newService(repo *MockUserRepository, counter *MockProcessCounter) (*userservice.UserService, *token.Service) {
	tokenSvc := token.NewService("secreto-de-test", time.Hour)
	svc := userservice.NewService(repo, counter, tokenSvc, logger.NewLogger("error"))
	return svc, tokenSvc
}

// TestRegister_HasheaPassword verifica que la contraseña nunca se persiste en
// texto plano y que el hash resultante valida contra la original.
func TestRegister_HasheaPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	var savedHash string
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		savedHash = u.PasswordHash
		return u.PasswordHash != "secret1" && u.Email == "alice@example.com"
	})).Return(domain.User{ID: uuid.NewString(), Email: "alice@example.com"}, nil)

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    "alice@example.com",
		Password: "secret1",
	})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedHash), []byte("secret1")))
	mockRepo.AssertExpectations(t)
}

// TestRegister_PasswordCorta verifica el mínimo de 6 caracteres.
func TestRegister_PasswordCorta(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    "alice@example.com",
		Password: "abc",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_CamposObligatorios verifica el rechazo de email o contraseña
// ausentes.
func TestRegister_CamposObligatorios(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	cases := []domain.UserRegistration{
		{Email: "", Password: "secret1"},
		{Email: "alice@example.com", Password: ""},
		{Email: "sin-arroba", Password: "secret1"},
	}

	for _, reg := range cases {
		_, err := svc.Register(context.Background(), reg)
		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}

	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_EmailDuplicado verifica que el conflicto del repositorio
// (índice único de email) se propaga como 409.
func TestRegister_EmailDuplicado(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	mockRepo.On("Save", mock.Anything, mock.Anything).
		Return(domain.User{}, apperror.NewConflictError("El email 'alice@example.com' ya está registrado."))

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    "alice@example.com",
		Password: "secret1",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestRegisterYLogin_MismoUsuario verifica la propiedad de ida y vuelta:
// registrarse y luego iniciar sesión con las mismas credenciales produce
// tokens que decodifican al mismo userId.
func TestRegisterYLogin_MismoUsuario(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, tokenSvc := newService(mockRepo, new(MockProcessCounter))

	userID := uuid.NewString()
	var savedUser domain.User

	mockRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedUser = args.Get(1).(domain.User)
		savedUser.ID = userID
	}).Return(domain.User{ID: userID, Email: "alice@example.com"}, nil)

	registered, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    "alice@example.com",
		Password: "secret1",
	})
	assert.NoError(t, err)

	regClaims, err := tokenSvc.ValidateToken(registered.Token)
	assert.NoError(t, err)
	assert.Equal(t, userID, regClaims.UserID)

	// Login con el usuario recién guardado (hash real de bcrypt).
	savedUser.ID = userID
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(savedUser, nil)

	logged, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	assert.NoError(t, err)

	loginClaims, err := tokenSvc.ValidateToken(logged.Token)
	assert.NoError(t, err)
	assert.Equal(t, userID, loginClaims.UserID)
	assert.Equal(t, "alice@example.com", loginClaims.Email)
}

// TestLogin_EmailDesconocido verifica la política uniforme: email inexistente
// responde el mismo 401 que una contraseña incorrecta.
func TestLogin_EmailDesconocido(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	mockRepo.On("FindByEmail", mock.Anything, "nadie@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("No existe un usuario con el email 'nadie@example.com'."))

	_, err := svc.Login(context.Background(), "nadie@example.com", "secret1")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

// TestLogin_PasswordIncorrecta verifica el 401 con credenciales malas.
func TestLogin_PasswordIncorrecta(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(domain.User{ID: uuid.NewString(), Email: "alice@example.com", PasswordHash: string(hash)}, nil)

	_, err := svc.Login(context.Background(), "alice@example.com", "otra-cosa")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

// TestDeleteAccount_BloqueadoPorProcesos verifica que la cuenta no se elimina
// mientras el usuario posea procesos: no hay borrado en cascada.
func TestDeleteAccount_BloqueadoPorProcesos(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockCounter := new(MockProcessCounter)
	svc, _ := newService(mockRepo, mockCounter)

	userID := uuid.NewString()
	mockCounter.On("CountByOwner", mock.Anything, userID).Return(3, nil)

	err := svc.DeleteAccount(context.Background(), userID, userID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "Delete")
}

// TestDeleteAccount_SinProcesos verifica el borrado cuando no hay procesos.
func TestDeleteAccount_SinProcesos(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockCounter := new(MockProcessCounter)
	svc, _ := newService(mockRepo, mockCounter)

	userID := uuid.NewString()
	mockCounter.On("CountByOwner", mock.Anything, userID).Return(0, nil)
	mockRepo.On("Delete", mock.Anything, userID).Return(nil)

	err := svc.DeleteAccount(context.Background(), userID, userID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestDeleteAccount_OtroUsuario verifica la regla self-only del borrado.
func TestDeleteAccount_OtroUsuario(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockCounter := new(MockProcessCounter)
	svc, _ := newService(mockRepo, mockCounter)

	err := svc.DeleteAccount(context.Background(), uuid.NewString(), uuid.NewString())

	assert.Error(t, err)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	mockCounter.AssertNotCalled(t, "CountByOwner")
	mockRepo.AssertNotCalled(t, "Delete")
}

// TestUpdateProfile_OtroUsuario verifica la regla self-only de la mutación.
func TestUpdateProfile_OtroUsuario(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	_, err := svc.UpdateProfile(context.Background(), uuid.NewString(), uuid.NewString(), domain.UserUpdate{
		Email: "alice@example.com",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestUpdateProfile_CambioDePassword verifica el re-hash cuando el payload
// trae una contraseña nueva.
func TestUpdateProfile_CambioDePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, _ := newService(mockRepo, new(MockProcessCounter))

	userID := uuid.NewString()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)

	mockRepo.On("FindByID", mock.Anything, userID).
		Return(domain.User{ID: userID, Email: "alice@example.com", PasswordHash: string(oldHash)}, nil)

	var newHash string
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		newHash = u.PasswordHash
		return u.PasswordHash != string(oldHash)
	})).Return(domain.User{ID: userID, Email: "alice@example.com"}, nil)

	_, err := svc.UpdateProfile(context.Background(), userID, userID, domain.UserUpdate{
		Email:    "alice@example.com",
		Password: "nuevo-secreto",
	})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("nuevo-secreto")))
	mockRepo.AssertExpectations(t)
}
