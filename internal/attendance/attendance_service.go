package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	attendanceerrors "qr-attendance/internal/attendance/errors"
	"qr-attendance/internal/events"
	"qr-attendance/internal/messaging/kafka"
	"qr-attendance/internal/qrcode"
	"qr-attendance/internal/shared/apperror"
	"qr-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const personalHistoryLimit = 30

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// Mark toggles the caller's attendance state: no open session creates a
	// check-in, an open session is closed as a check-out with hours worked.
	Mark(ctx context.Context, actorID string, req MarkRequest) (MarkResponse, error)
	Personal(ctx context.Context, employeeID string, filter RangeFilter) ([]RecordResponse, error)
	Report(ctx context.Context, filter ReportFilter) ([]ReportEntryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	sf     *singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository) Service {
	return NewServiceWithOutbox(db, repo, nil)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("attendance.service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Mark(ctx context.Context, actorID string, req MarkRequest) (MarkResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if len(req.QRData) == 0 {
		return MarkResponse{}, attendanceerrors.ErrQRDataRequired
	}

	scan := qrcode.ParsePayload(req.QRData)
	employeeID := scan.EmployeeID()
	if employeeID == "" {
		// Opaque payloads fall back to the caller's own identity
		employeeID = actorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		s.logger.Warn("mark attendance invalid employee id",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
		)
		return MarkResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	// Two concurrent check-ins can both see "no open session"; the loser of
	// the insert race hits uq_attendance_open and re-resolves to check-out.
	for attempt := 0; attempt < 2; attempt++ {
		resp, err := s.markOnce(ctx, employeeID)
		if errors.Is(err, errOpenSessionConflict) {
			s.logger.Info("mark attendance lost check-in race, retrying as check-out",
				zap.String("request_id", rid),
				zap.String("employee_id", employeeID),
			)
			continue
		}
		if err != nil {
			s.logger.Error("mark attendance failed",
				zap.String("request_id", rid),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return MarkResponse{}, err
		}

		s.logger.Info("mark attendance success",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.String("kind", resp.Kind),
			zap.String("record_id", resp.ID),
		)
		return resp, nil
	}

	return MarkResponse{}, apperror.New(apperror.CodeConflict, "Attendance state changed concurrently, please retry", 409)
}

func (s *service) markOnce(ctx context.Context, employeeID string) (MarkResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MarkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	open, err := qtx.FindOpenSession(ctx, employeeID)
	switch {
	case err == nil:
		return s.checkOut(ctx, tx, qtx, open, now)
	case errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound):
		return s.checkIn(ctx, tx, qtx, employeeID, now)
	default:
		return MarkResponse{}, mapRepositoryError(err)
	}
}

func (s *service) checkIn(ctx context.Context, tx *sql.Tx, qtx Repository, employeeID string, now time.Time) (MarkResponse, error) {
	rec := &AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		CheckIn:    now,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MarkResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return MarkResponse{}, mapRepositoryError(err)
	}
	if err := s.queueEvent(ctx, tx, rec, KindCheckIn, nil); err != nil {
		return MarkResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return MarkResponse{}, err
	}

	return MarkResponse{
		Kind:    KindCheckIn,
		ID:      rec.ID.String(),
		CheckIn: rec.CheckIn.Format(time.RFC3339),
	}, nil
}

func (s *service) checkOut(ctx context.Context, tx *sql.Tx, qtx Repository, open *AttendanceRecord, now time.Time) (MarkResponse, error) {
	hours := roundHours(now.Sub(open.CheckIn))

	if err := qtx.Close(ctx, open.ID, now, hours); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return MarkResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return MarkResponse{}, mapRepositoryError(err)
	}
	if err := s.queueEvent(ctx, tx, open, KindCheckOut, &hours); err != nil {
		return MarkResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return MarkResponse{}, err
	}

	checkOut := now.Format(time.RFC3339)
	hoursStr := formatHours(hours)
	return MarkResponse{
		Kind:        KindCheckOut,
		ID:          open.ID.String(),
		CheckIn:     open.CheckIn.Format(time.RFC3339),
		CheckOut:    &checkOut,
		HoursWorked: &hoursStr,
	}, nil
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, rec *AttendanceRecord, kind string, hours *float64) error {
	if s.outbox == nil {
		return nil
	}

	event := events.AttendanceMarkedEvent{
		EventType:   "attendance_marked",
		RequestID:   contextutil.GetRequestID(ctx),
		RecordID:    rec.ID.String(),
		EmployeeID:  rec.EmployeeID.String(),
		Kind:        kind,
		HoursWorked: hours,
		OccurredAt:  s.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "attendance",
		AggregateID:   event.RecordID,
		EventType:     event.EventType,
		Topic:         events.AttendanceMarkedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Personal(ctx context.Context, employeeID string, filter RangeFilter) ([]RecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	var (
		rows []AttendanceRecord
		err  error
	)
	if filter.StartDate == "" && filter.EndDate == "" {
		rows, err = s.repo.FindByEmployee(ctx, employeeID, personalHistoryLimit)
	} else {
		start, end, rangeErr := parseDateRange(filter.StartDate, filter.EndDate, s.now())
		if rangeErr != nil {
			return nil, rangeErr
		}
		rows, err = s.repo.FindByEmployeeBetween(ctx, employeeID, start, end)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToRecordResponse(r)
	}
	return res, nil
}

func (s *service) Report(ctx context.Context, filter ReportFilter) ([]ReportEntryResponse, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
	}

	start, end, err := parseDateRange(filter.StartDate, filter.EndDate, s.now())
	if err != nil {
		return nil, err
	}

	// Admin dashboards poll this endpoint; identical in-flight queries share
	// one database round trip.
	key := fmt.Sprintf("report:%s:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"), filter.EmployeeID)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, err := s.repo.FindReport(ctx, start, end, filter.EmployeeID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		res := make([]ReportEntryResponse, len(rows))
		for i, r := range rows {
			res[i] = ReportEntryResponse{
				RecordResponse: mapToRecordResponse(r.AttendanceRecord),
				EmployeeID:     r.EmployeeID.String(),
				EmployeeName:   r.EmployeeName,
				EmployeeEmail:  r.EmployeeEmail,
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ReportEntryResponse), nil
}

// parseDateRange resolves an inclusive YYYY-MM-DD range to [start, end) UTC
// instants. A missing bound defaults to today.
func parseDateRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	today := now.Truncate(24 * time.Hour)

	start := today
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
		}
		start = parsed
	}

	end := today
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
		}
		end = parsed
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
	}

	return start, end.AddDate(0, 0, 1), nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func mapToRecordResponse(r AttendanceRecord) RecordResponse {
	resp := RecordResponse{
		ID:      r.ID.String(),
		CheckIn: r.CheckIn.Format(time.RFC3339),
		Status:  "In Progress",
	}
	if r.CheckOut != nil {
		v := r.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
		resp.Status = "Completed"
	}
	if r.HoursWorked != nil {
		v := formatHours(*r.HoursWorked)
		resp.HoursWorked = &v
	}
	return resp
}
