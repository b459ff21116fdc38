package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/apperror"
	"github.com/Qwerty-Alisha/ShopEase/models"
)

// --- Mocks for Dependencies ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, updates bson.M) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(user *models.SanitizedUser) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

type MockSessionManager struct{ mock.Mock }

func (m *MockSessionManager) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockSessionManager) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// --- Tests ---

func TestLogin(t *testing.T) {
	ctx := context.Background()

	password := "strongpassword123"
	salt, hash, _ := HashPassword(password)
	testUser := &models.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Password: hash,
		Salt:     salt,
		Role:     models.RoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		sessions := new(MockSessionManager)
		svc := NewAuthService(repo, tokens, sessions, zap.NewNop())

		repo.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()
		tokens.On("Issue", mock.Anything).Return("signed-token", nil).Once()
		sessions.On("Create", ctx, testUser.ID.String()).Return("session-token", nil).Once()

		creds, err := svc.Login(ctx, testUser.Email, password)

		assert.NoError(t, err)
		assert.Equal(t, "signed-token", creds.Token)
		assert.Equal(t, "session-token", creds.SessionToken)
		assert.Equal(t, testUser.ID, creds.User.ID)
		repo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		sessions := new(MockSessionManager)
		svc := NewAuthService(repo, tokens, sessions, zap.NewNop())

		repo.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()

		_, err := svc.Login(ctx, testUser.Email, "not-the-password")

		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Issue")
		sessions.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, new(MockTokenIssuer), new(MockSessionManager), zap.NewNop())

		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, mongo.ErrNoDocuments).Once()

		_, err := svc.Login(ctx, "nobody@example.com", password)

		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials,
			"unknown email and wrong password must be indistinguishable")
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		sessions := new(MockSessionManager)
		svc := NewAuthService(repo, tokens, sessions, zap.NewNop())

		repo.On("FindByEmail", ctx, "new@example.com").Return(nil, mongo.ErrNoDocuments).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "new@example.com" &&
				u.Role == models.RoleCustomer &&
				len(u.Password) == 32 && len(u.Salt) == 16 &&
				VerifyPassword("hunter2hunter2", u.Salt, u.Password)
		})).Return(nil).Once()
		tokens.On("Issue", mock.Anything).Return("signed-token", nil).Once()
		sessions.On("Create", ctx, mock.Anything).Return("session-token", nil).Once()

		creds, err := svc.Register(ctx, "new@example.com", "hunter2hunter2")

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", creds.User.Email)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, new(MockTokenIssuer), new(MockSessionManager), zap.NewNop())

		existing := &models.User{ID: uuid.New(), Email: "taken@example.com"}
		repo.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil).Once()

		_, err := svc.Register(ctx, "taken@example.com", "hunter2hunter2")

		appErr := apperror.As(err)
		assert.Equal(t, apperror.ErrConflict.Code, appErr.Code)
		repo.AssertNotCalled(t, "Create")
	})
}
