package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sige/internal/tenant"
)

func TestEnforce_AdminCanProcessPayroll(t *testing.T) {
	svc, err := NewService()
	require.NoError(t, err)

	allowed, err := svc.Enforce(tenant.RoleAdmin, "folha", "processar")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforce_EmployeeCannotProcessPayroll(t *testing.T) {
	svc, err := NewService()
	require.NoError(t, err)

	allowed, err := svc.Enforce(tenant.RoleEmployee, "folha", "processar")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_EmployeeCanPunch(t *testing.T) {
	svc, err := NewService()
	require.NoError(t, err)

	allowed, err := svc.Enforce(tenant.RoleEmployee, "ponto", "registrar")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforce_UnknownRoleDenied(t *testing.T) {
	svc, err := NewService()
	require.NoError(t, err)

	allowed, err := svc.Enforce("visitante", "kpi", "ler")
	require.NoError(t, err)
	assert.False(t, allowed)
}
