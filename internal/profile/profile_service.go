package profile

import (
	"context"

	"qr-attendance/internal/employee"
	employeeerrors "qr-attendance/internal/employee/errors"
	"qr-attendance/internal/qrcode"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, employeeID string) (ProfileResponse, error)
	Update(ctx context.Context, employeeID string, req UpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	repo   employee.Repository
	codec  qrcode.Codec
	logger *zap.Logger
}

func NewService(repo employee.Repository, codec qrcode.Codec) Service {
	return &service{
		repo:   repo,
		codec:  codec,
		logger: zap.L().Named("profile.service"),
	}
}

func (s *service) Get(ctx context.Context, employeeID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProfileResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, mapLookupError(err)
	}

	// Rows imported before badge issuance went live have no stored QR
	if empl.QRCode == nil || *empl.QRCode == "" {
		qr, err := s.codec.Generate(empl.ID.String(), empl.Email, empl.Name)
		if err != nil {
			return ProfileResponse{}, employeeerrors.ErrQRGenerationFailed
		}
		empl.QRCode = &qr
		if err := s.repo.Update(ctx, empl); err != nil {
			s.logger.Warn("qr backfill persist failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
		}
	}

	return mapToProfile(*empl), nil
}

func (s *service) Update(ctx context.Context, employeeID string, req UpdateProfileRequest) (ProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProfileResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, mapLookupError(err)
	}

	empl.Name = req.Name
	if req.Department != nil {
		empl.Department = req.Department
	}
	if req.Position != nil {
		empl.Position = req.Position
	}

	// The badge carries the display name, so a rename reissues it
	qr, err := s.codec.Generate(empl.ID.String(), empl.Email, empl.Name)
	if err != nil {
		return ProfileResponse{}, employeeerrors.ErrQRGenerationFailed
	}
	empl.QRCode = &qr

	if err := s.repo.Update(ctx, empl); err != nil {
		return ProfileResponse{}, mapLookupError(err)
	}

	s.logger.Info("profile updated", zap.String("employee_id", employeeID))
	return mapToProfile(*empl), nil
}

func mapToProfile(e employee.Employee) ProfileResponse {
	qr := ""
	if e.QRCode != nil {
		qr = *e.QRCode
	}
	return ProfileResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Role:       e.Role,
		QRCode:     qr,
	}
}
