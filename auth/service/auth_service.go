package service

import (
	"context"
	"os"
	"strings"
	"time"

	authpkg "github.com/cornellb28/orderbbs-app/auth"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	repo authpkg.Repository
}

func NewAuthService(repo authpkg.Repository) authpkg.Service {
	return &authService{repo: repo}
}

func (s *authService) Login(ctx context.Context, req authpkg.LoginRequest) (*authpkg.Principal, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, authpkg.ErrInvalidCredentials
	}

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Active {
		return nil, authpkg.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, authpkg.ErrInvalidCredentials
	}

	p := &authpkg.Principal{AdminID: admin.ID.String(), Email: admin.Email}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change-me"
	}
	token, err := authpkg.SignJWT(secret, p, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	p.Token = token
	return p, nil
}
