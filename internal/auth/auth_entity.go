package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the credential view over the employees table. The employee
// module owns writes; auth only reads. DeletedAt mirrors the employee
// entity so a soft-deleted employee can no longer authenticate.
type Account struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"column:name"`
	Email     string         `gorm:"column:email"`
	Password  string         `gorm:"column:password"`
	Role      string         `gorm:"column:role"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (Account) TableName() string {
	return "employees"
}
