package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "qr-attendance/internal/employee/errors"
	"qr-attendance/internal/events"
	"qr-attendance/internal/messaging/kafka"
	"qr-attendance/internal/qrcode"
	"qr-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	employeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	codec  qrcode.Codec
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, codec qrcode.Codec, rdb *redis.Client) Service {
	return NewServiceWithOutbox(db, repo, codec, nil, rdb)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	codec qrcode.Codec,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:     db,
		repo:   repo,
		codec:  codec,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = "employee"
	}

	empl := &Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Department: req.Department,
		Position:   req.Position,
		Role:       role,
	}

	// Badge QR embeds the employee id, so the id is assigned before insert
	qr, err := s.codec.Generate(empl.ID.String(), empl.Email, empl.Name)
	if err != nil {
		s.logger.Error("create employee qr generation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, employeeerrors.ErrQRGenerationFailed
	}
	empl.QRCode = &qr

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Email:      empl.Email,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, employeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Admins opening the report view all hit this at once; collapse to one query
	v, err, _ := s.sf.Do(employeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{ID: e.ID.String(), Name: e.Name}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, employeeOptionsKey, jsonData, optionsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = req.Name
	empl.Email = req.Email
	empl.Department = req.Department
	empl.Position = req.Position

	// Identity fields changed, so the badge is reissued
	qr, err := s.codec.Generate(empl.ID.String(), empl.Email, empl.Name)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrQRGenerationFailed
	}
	empl.QRCode = &qr

	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", employeeOptionsKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Role:       e.Role,
		QRCode:     e.QRCode,
	}
}
