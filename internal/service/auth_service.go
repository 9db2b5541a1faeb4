package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Ошибки аутентификации
var (
	ErrInvalidCredentials = errors.New("неверные учётные данные")
)

// AuthService отвечает за учётные записи и проверку учётных данных.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
}

type authService struct {
	accountRepo repository.AccountRepository
}

func NewAuthService(accountRepo repository.AccountRepository) AuthService {
	return &authService{accountRepo: accountRepo}
}

// Register создаёт новую учётную запись с bcrypt-хэшем пароля.
func (s *authService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate сверяет пару логин/пароль с хранимым хэшем.
// Несуществующий логин и неверный пароль неразличимы для вызывающего:
// в обоих случаях возвращается ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}
