package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/apperror"
	"github.com/Qwerty-Alisha/ShopEase/models"
	"github.com/Qwerty-Alisha/ShopEase/repository"
)

// Credentials carries the outcome of a successful authentication: the
// sanitized identity plus the bearer token and session token to set as
// cookies.
type Credentials struct {
	User         *models.SanitizedUser
	Token        string
	SessionToken string
}

// TokenIssuer mints bearer tokens for sanitized identities.
type TokenIssuer interface {
	Issue(user *models.SanitizedUser) (string, error)
}

// SessionManager opens and destroys server-side sessions.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// AuthService implements registration and the local (email + password)
// authentication variant.
type AuthService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	sessions SessionManager
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, sessions SessionManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, sessions: sessions, logger: logger}
}

// Register creates a user with a freshly salted password hash and opens a
// session for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (*Credentials, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperror.WithMessage(apperror.ErrConflict, "Email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}

	salt, hash, err := HashPassword(password)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hash,
		Salt:     salt,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.establish(ctx, user)
}

// Login runs the local strategy: look the user up by email, verify the
// submitted password against the stored salt and hash, then mint a token and
// open a session. A wrong email and a wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Wrap(apperror.ErrDatabaseQuery, err)
	}

	if !VerifyPassword(password, user.Salt, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.establish(ctx, user)
}

// Logout destroys the server-side session. The bearer token cookie is
// cleared by the caller; the token itself expires on its own.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Destroy(ctx, sessionToken)
}

func (s *AuthService) establish(ctx context.Context, user *models.User) (*Credentials, error) {
	sanitized := user.Sanitize()

	token, err := s.tokens.Issue(sanitized)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}

	sessionToken, err := s.sessions.Create(ctx, user.ID.String())
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}

	return &Credentials{User: sanitized, Token: token, SessionToken: sessionToken}, nil
}
