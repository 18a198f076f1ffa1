package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-timesheet/internal/rbac"
)

func TestEnforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"EMPLOYEE", "timesheet", "write", true},
		{"EMPLOYEE", "leave", "create", true},
		{"EMPLOYEE", "leave", "approve", false},
		{"EMPLOYEE", "project", "manage", false},

		// MANAGER inherits everything an EMPLOYEE can do.
		{"MANAGER", "timesheet", "write", true},
		{"MANAGER", "leave", "approve", true},
		{"MANAGER", "user", "read", true},
		{"MANAGER", "user", "manage", false},

		// ADMIN inherits MANAGER and adds the manage actions.
		{"ADMIN", "leave", "approve", true},
		{"ADMIN", "project", "manage", true},
		{"ADMIN", "entitlement", "manage", true},

		{"UNKNOWN", "timesheet", "read", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, got, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}
