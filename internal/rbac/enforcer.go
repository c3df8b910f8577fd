package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles come from the external identity provider; the policy here only
// maps them onto resources. ADMIN inherits everything HR can do.
const (
	RoleEmployee = "EMPLOYEE"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
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

type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleEmployee, "leave", "create"},
		{RoleEmployee, "leave", "read"},
		{RoleEmployee, "profile", "read"},
		{RoleEmployee, "profile", "update"},
		{RoleEmployee, "dashboard", "read"},

		{RoleHR, "leave", "review"},
		{RoleHR, "employee", "read"},
		{RoleHR, "employee", "provision"},
		{RoleHR, "dashboard", "read_all"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	groupings := [][]string{
		{RoleHR, RoleEmployee},
		{RoleAdmin, RoleHR},
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	return e.enforcer.Enforce(role, resource, action)
}
