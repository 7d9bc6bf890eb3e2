// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register orchestrates the complete account registration process.
// Validation is ordered; the first failing check decides the response.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Debug("Starting registration", slog.String("email", input.Email))

	if err := validateRegistration(input); err != nil {
		logger.Warn("Registration validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Fast-path duplicate check. The directory's unique email index remains
	// the authoritative guard against a concurrent registration race.
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		logger.Warn("Registration rejected, email taken", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration rejected")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		logger.Error("Failed to check existing email", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPersistenceFailed, "failed to check existing email")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost the check-then-insert race; same outcome as the pre-check.
			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "registration rejected")
		}

		logger.Error("Failed to persist user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPersistenceFailed, "failed to persist user")
	}

	logger.Info("User registered", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

func validateRegistration(input *usecase.RegisterInput) error {
	switch {
	case input.Name == "":
		return domainerrors.NewValidationError("name required")
	case input.Email == "":
		return domainerrors.NewValidationError("email required")
	case input.Password == "":
		return domainerrors.NewValidationError("password required")
	case input.Password != input.ConfirmPassword:
		return domainerrors.NewValidationError("passwords do not match")
	}

	return nil
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Debug("Starting user login", slog.String("email", input.Email))

	if input.Email == "" {
		return nil, domainerrors.NewValidationError("email required")
	}
	if input.Password == "" {
		return nil, domainerrors.NewValidationError("password required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "login failed")
		}

		logger.Error("Failed to load user for login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPersistenceFailed, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		logger.Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrPasswordMismatch, "login failed")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		logger.Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to issue token")
	}

	logger.Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
