package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles are a fixed enum carried on the user row; policies are seeded
// at startup rather than managed per tenant.
const rbacModel = `
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

// policies is the full permission table. MANAGER inherits EMPLOYEE,
// ADMIN inherits MANAGER via grouping rules below.
var policies = [][]string{
	{"EMPLOYEE", "timesheet", "read"},
	{"EMPLOYEE", "timesheet", "write"},
	{"EMPLOYEE", "leave", "read"},
	{"EMPLOYEE", "leave", "create"},
	{"EMPLOYEE", "leave", "cancel"},
	{"EMPLOYEE", "project", "read"},
	{"EMPLOYEE", "leavetype", "read"},
	{"EMPLOYEE", "entitlement", "read"},

	{"MANAGER", "leave", "approve"},
	{"MANAGER", "user", "read"},

	{"ADMIN", "user", "manage"},
	{"ADMIN", "project", "manage"},
	{"ADMIN", "leavetype", "manage"},
	{"ADMIN", "entitlement", "manage"},
}

var groupings = [][]string{
	{"MANAGER", "EMPLOYEE"},
	{"ADMIN", "MANAGER"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
