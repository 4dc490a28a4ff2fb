package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

type AuthService struct {
	userRepository ports.UserRepository
	passwordHasher ports.PasswordHasher
	tokenService   ports.TokenService
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepository ports.UserRepository,
	passwordHasher ports.PasswordHasher,
	tokenService ports.TokenService,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
	}
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.userRepository.Insert(ctx, domain.CreateUserInput{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
	})
}

// Login verifies credentials and issues a bearer token. Unknown user and
// wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	user, err := s.userRepository.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.passwordHasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokenService.Issue(user.ID)
}

// Authenticate resolves a bearer token to a user. A valid token whose
// subject no longer exists (deleted account) is treated as invalid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokenService.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, err
	}

	return user, nil
}
