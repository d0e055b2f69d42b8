package usecase

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*entity.Identity, error)
	EnsureAdmin(ctx context.Context) error
	GetUser(ctx context.Context, id int64) (*response.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	config   utils.AuthConfig
	log      *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	config utils.AuthConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	// 2. Check username
	existingUser, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		s.log.Warn("Register rejected, username taken", zap.String("username", req.Username))
		return nil, apperr.Conflict("username " + req.Username + " already taken")
	}

	// 3. Hash password
	hash, err := entity.NewCredentialHash(req.Password, s.config.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.InvalidField("Password", "Maximum length is 72 bytes")
		}
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	// 4. Save user; the unique index catches a racing duplicate
	user := &entity.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         entity.RoleClient,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Authenticate never tells the caller whether the username or the password
// was wrong.
func (s *authService) Authenticate(ctx context.Context, req *request.LoginRequest) (*entity.Identity, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	// 2. Find user
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	// 3. User not found
	if user == nil {
		entity.DummyVerify(req.Password, s.config.BcryptCost)
		s.log.Warn("Login failed", zap.String("username", req.Username))
		return nil, apperr.ErrInvalidCredentials
	}

	// 4. Check password
	if !user.PasswordHash.Verify(req.Password) {
		s.log.Warn("Login failed", zap.String("username", req.Username))
		return nil, apperr.ErrInvalidCredentials
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Stringer("role", user.Role))

	identity := user.Identity()
	return &identity, nil
}

// EnsureAdmin seeds the configured administrator when no admin exists yet.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	exists, err := s.userRepo.ExistsByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if s.config.AdminUsername == "" || s.config.AdminPassword == "" {
		return apperr.InvalidField("admin", "bootstrap credentials are empty")
	}

	hash, err := entity.NewCredentialHash(s.config.AdminPassword, s.config.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash admin password", zap.Error(err))
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Username:     s.config.AdminUsername,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		s.log.Error("Failed to create bootstrap admin",
			zap.Error(err),
			zap.String("username", admin.Username))
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	s.log.Warn("Default administrator created; change its credentials before real use",
		zap.Int64("user_id", admin.ID),
		zap.String("username", admin.Username))

	return nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", id)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
