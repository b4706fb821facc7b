package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=enforcer.go -destination=mock/enforcer_mock.go -package=mock
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds the static role policy: employees mark their own
// attendance and read their own data; admins additionally manage the
// directory and read the cross-employee report.
func NewEnforcer() (Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleEmployee, "attendance", "mark"},
		{RoleEmployee, "attendance", "read"},
		{RoleEmployee, "profile", "read"},
		{RoleEmployee, "profile", "update"},
		{RoleAdmin, "report", "read"},
		{RoleAdmin, "employees", "create"},
		{RoleAdmin, "employees", "read"},
		{RoleAdmin, "employees", "update"},
		{RoleAdmin, "employees", "delete"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	// Admins inherit everything employees can do
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleEmployee); err != nil {
		return nil, err
	}

	return &enforcer{e: e}, nil
}

func (f *enforcer) Enforce(role, resource, action string) (bool, error) {
	return f.e.Enforce(role, resource, action)
}
