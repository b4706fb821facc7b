package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "qr-attendance/internal/employee/errors"
	"qr-attendance/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, empl *Employee) error
	findAllFn     func(ctx context.Context) ([]Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*Employee, error)
	updateFn      func(ctx context.Context, empl *Employee) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error      { return f.deleteFn(ctx, id) }

type fakeCodec struct {
	generateFn func(employeeID, email, name string) (string, error)
}

func (f *fakeCodec) Generate(employeeID, email, name string) (string, error) {
	return f.generateFn(employeeID, email, name)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error {
		saved = *empl
		return nil
	}

	codec := &fakeCodec{generateFn: func(employeeID, email, name string) (string, error) {
		return "data:image/png;base64,AAAA", nil
	}}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, codec, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:     "Kim",
		Email:    "kim@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Kim", resp.Name)
	assert.Equal(t, "employee", resp.Role)
	if assert.NotNil(t, resp.QRCode) {
		assert.Contains(t, *resp.QRCode, "data:image/png;base64,")
	}

	// Stored password is hashed, never the raw input
	assert.NotEqual(t, "password123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("password123")))

	if assert.Len(t, outbox.created, 1) {
		assert.Equal(t, "employee_created", outbox.created[0].EventType)
		assert.Equal(t, saved.ID.String(), outbox.created[0].AggregateID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
	}

	codec := &fakeCodec{generateFn: func(employeeID, email, name string) (string, error) {
		return "data:image/png;base64,AAAA", nil
	}}

	svc := NewService(db, repo, codec, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:     "Kim",
		Email:    "kim@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		assert.Equal(t, id.String(), got)
		return &Employee{ID: id, Name: "Kim", Email: "kim@example.com", Role: "employee"}, nil
	}

	svc := NewService(db, repo, &fakeCodec{}, nil)

	resp, err := svc.GetByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, "Kim", resp.Name)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeCodec{}, nil)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_Update_ReissuesBadge(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	old := "data:image/png;base64,OLD"
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		return &Employee{ID: id, Name: "Kim", Email: "kim@example.com", Role: "employee", QRCode: &old}, nil
	}
	var updated Employee
	repo.updateFn = func(ctx context.Context, empl *Employee) error {
		updated = *empl
		return nil
	}

	var generatedFor string
	codec := &fakeCodec{generateFn: func(employeeID, email, name string) (string, error) {
		generatedFor = name
		return "data:image/png;base64,NEW", nil
	}}

	svc := NewService(db, repo, codec, nil)
	resp, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{
		Name:  "Kim Lee",
		Email: "kim@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Kim Lee", resp.Name)
	assert.Equal(t, "Kim Lee", generatedFor)
	assert.Equal(t, "data:image/png;base64,NEW", *updated.QRCode)
}

func TestService_GetOptions(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	calls := 0
	repo.findAllFn = func(ctx context.Context) ([]Employee, error) {
		calls++
		return []Employee{
			{ID: uuid.New(), Name: "Ana"},
			{ID: uuid.New(), Name: "Kim"},
		}, nil
	}

	svc := NewService(db, repo, &fakeCodec{}, nil)
	options, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Equal(t, "Ana", options[0].Name)
	assert.Equal(t, 1, calls)
}

func TestService_Delete(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, got string) (*Employee, error) {
		return &Employee{ID: id}, nil
	}
	deleted := ""
	repo.deleteFn = func(ctx context.Context, got string) error {
		deleted = got
		return nil
	}

	svc := NewService(db, repo, &fakeCodec{}, nil)
	assert.NoError(t, svc.Delete(context.Background(), id.String()))
	assert.Equal(t, id.String(), deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "bogus"), employeeerrors.ErrInvalidEmployeeID)
}
