package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sige/internal/shared/apperror"
)

func newTestResolver(allowAutodetect bool) *Resolver {
	return NewResolver(nil, allowAutodetect, zap.NewNop())
}

func TestResolve_AdminIsItsOwnTenant(t *testing.T) {
	r := newTestResolver(false)

	got, err := r.Resolve(context.Background(), &Principal{
		UserID:        10,
		Role:          RoleAdmin,
		Authenticated: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestResolve_EmployeeUsesOwningAdmin(t *testing.T) {
	r := newTestResolver(false)

	got, err := r.Resolve(context.Background(), &Principal{
		UserID:        55,
		Role:          RoleEmployee,
		AdminID:       10,
		Authenticated: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestResolve_EmployeeWithoutAdminFailsClosed(t *testing.T) {
	r := newTestResolver(false)

	_, err := r.Resolve(context.Background(), &Principal{
		UserID:        55,
		Role:          RoleEmployee,
		Authenticated: true,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrTenantMissing))
}

func TestResolve_UnauthenticatedFailsClosed(t *testing.T) {
	r := newTestResolver(false)

	_, err := r.Resolve(context.Background(), nil)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeTenantMissing, appErr.Code)
	assert.Equal(t, 403, appErr.HTTPStatus)
}

func TestResolve_AutodetectDisabledNeverGuesses(t *testing.T) {
	r := newTestResolver(false)

	_, err := r.Resolve(context.Background(), &Principal{Authenticated: false})
	assert.ErrorIs(t, err, apperror.ErrTenantMissing)
}

func TestScoped_RejectsZeroTenant(t *testing.T) {
	_, err := Scoped(nil, 0)
	assert.ErrorIs(t, err, apperror.ErrTenantMissing)

	_, err = Scoped(nil, -3)
	assert.ErrorIs(t, err, apperror.ErrTenantMissing)
}
