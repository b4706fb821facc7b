package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string         `gorm:"column:name;type:varchar(255);not null"`
	Email      string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Password   string         `gorm:"column:password;type:varchar(255);not null"`
	Department *string        `gorm:"column:department;type:varchar(100)"`
	Position   *string        `gorm:"column:position;type:varchar(100)"`
	Role       string         `gorm:"column:role;type:varchar(50);not null;default:'employee'"`
	QRCode     *string        `gorm:"column:qr_code;type:text"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
