package admin

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"eversol-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service holds the back-office business logic that is more than a
// repository pass-through.
type Service struct {
	repo *Repository
	jwt  *jwt.Manager
}

func NewService(repo *Repository, jwtManager *jwt.Manager) *Service {
	return &Service{repo: repo, jwt: jwtManager}
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	Admin *Account `json:"admin"`
}

// Login checks the credentials against the admins collection and issues a
// signed token. Only accounts with the admin role may log in.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Role != "admin" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Admin: account}, nil
}

// HashPassword produces the stored form of an admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
