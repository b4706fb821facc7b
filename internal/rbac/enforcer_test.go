package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforcer_Policies(t *testing.T) {
	e, err := NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{RoleEmployee, "attendance", "mark", true},
		{RoleEmployee, "attendance", "read", true},
		{RoleEmployee, "profile", "update", true},
		{RoleEmployee, "report", "read", false},
		{RoleEmployee, "employees", "create", false},
		{RoleEmployee, "employees", "delete", false},
		{RoleAdmin, "report", "read", true},
		{RoleAdmin, "employees", "create", true},
		{RoleAdmin, "employees", "delete", true},
		// Admins inherit the employee policies
		{RoleAdmin, "attendance", "mark", true},
		{RoleAdmin, "profile", "read", true},
		{"intern", "attendance", "mark", false},
	}

	for _, tc := range cases {
		allowed, err := e.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}
