package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/service/auth"
	"github.com/phrazzld/flashlearn/internal/store"
)

// AuthResult is returned by every operation that signs a user in.
type AuthResult struct {
	User   *domain.User
	Tokens *auth.TokenPair
}

// UserService manages accounts and sign-in.
type UserService interface {
	// Register creates an account and signs it in.
	// Returns store.ErrEmailExists when the email is taken.
	Register(ctx context.Context, email, username, password string) (*AuthResult, error)

	// Login checks the credentials and issues a new token pair.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// GetUser returns the user with the given ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type userServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a UserService. It panics on a nil dependency.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	log *slog.Logger,
) UserService {
	if users == nil || hasher == nil || verifier == nil || tokens == nil {
		panic("user service dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &userServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   log.With(slog.String("component", "user_service")),
	}
}

func (s *userServiceImpl) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, username, password)
	if err != nil {
		log.Debug("rejected registration", slog.String("error", err.Error()))
		return nil, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email")
			return nil, err
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return s.signIn(ctx, user, "register")
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, NewServiceError("login", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return s.signIn(ctx, user, "login")
}

func (s *userServiceImpl) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, NewServiceError("refresh", "failed to look up user", err)
	}

	return s.signIn(ctx, user, "refresh")
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, NewServiceError("get_user", "failed to load user", err)
	}
	return user, nil
}

func (s *userServiceImpl) signIn(ctx context.Context, user *domain.User, operation string) (*AuthResult, error) {
	pair, err := s.tokens.GenerateTokenPair(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError(operation, "failed to issue tokens", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}
