package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatlog/internal/model"
	"chatlog/internal/repository"
	"chatlog/internal/utils"
)

// Sentinel errors carry the exact messages the API reports to clients.
var (
	ErrUsernameExists     = errors.New("Username already exists")
	ErrEmailExists        = errors.New("Email already exists")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrAccountDisabled    = errors.New("Account is disabled")
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, username, password, email, role string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Signup registers a new user and returns it along with a signed token.
// The role is normalized before any store access: an invalid role is coerced
// to the default, never rejected, and never blocks on a duplicate check.
func (s *authService) Signup(ctx context.Context, username, password, email, role string) (*model.User, string, error) {
	role = model.NormalizeRole(role)

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing username: %w", err)
	}
	if taken {
		return nil, "", ErrUsernameExists
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Enabled:      true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the existence checks; the unique
		// constraints still report the correct conflict.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", ErrUsernameExists
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.Username, []string{user.Role})
	if err != nil {
		return nil, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns it along with a signed token
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.jwtUtil.GenerateToken(user.Username, []string{user.Role})
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
