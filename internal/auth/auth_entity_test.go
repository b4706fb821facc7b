package auth_test

import (
	"reflect"
	"testing"

	"qr-attendance/internal/auth"
	"qr-attendance/internal/employee"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Account and Employee read the same table; both must declare gorm's
// soft-delete column so a deleted employee's credentials stop resolving.
func TestAccount_CarriesSoftDeleteScope(t *testing.T) {
	accField, ok := reflect.TypeOf(auth.Account{}).FieldByName("DeletedAt")
	assert.True(t, ok, "Account must declare DeletedAt")
	assert.Equal(t, reflect.TypeOf(gorm.DeletedAt{}), accField.Type)

	emplField, ok := reflect.TypeOf(employee.Employee{}).FieldByName("DeletedAt")
	assert.True(t, ok)
	assert.Equal(t, emplField.Type, accField.Type)

	assert.Equal(t, employee.Employee{}.TableName(), auth.Account{}.TableName())
}
