package auth

import (
	"context"
	"os"
	"time"

	autherrors "qr-attendance/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (token string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: zap.L().Named("auth.service")}
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login unknown email", zap.String("email", email))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		s.logger.Warn("login invalid password", zap.String("email", email))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(acc.ID.String(), acc.Email, acc.Role, tokenTTL)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("employee_id", acc.ID.String()))
	return token, AuthResponse{
		ID:    acc.ID.String(),
		Email: acc.Email,
		Name:  acc.Name,
		Role:  acc.Role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	return &AuthResponse{
		ID:    acc.ID.String(),
		Email: acc.Email,
		Name:  acc.Name,
		Role:  acc.Role,
	}, nil
}

func (s *service) generateToken(employeeID, email, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": employeeID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
