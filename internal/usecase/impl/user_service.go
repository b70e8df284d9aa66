package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"healthboard/internal/domain/entity"
	domainerrors "healthboard/internal/domain/errors"
	"healthboard/internal/domain/repository"
	"healthboard/internal/domain/service"
	"healthboard/internal/usecase"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewUserService creates the account service.
func NewUserService(userRepo repository.UserRepository, hasher service.PasswordHasher, tokenSvc service.TokenService, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register creates an account with a hashed password.
func (s *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserView, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        strings.TrimSpace(input.Email),
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", slog.String("user_id", user.ID.String()))

	return &usecase.UserView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenSvc.AccessTokenDuration().Seconds()),
		User: usecase.UserView{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
