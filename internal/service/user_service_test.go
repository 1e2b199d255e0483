package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tenant-admin/internal/domain"
	apperrors "github.com/spec-kit/tenant-admin/pkg/util"
)

type userFixture struct {
	svc         *UserService
	users       *fakeUserRepo
	memberships *fakeMembershipRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	users := newFakeUserRepo()
	memberships := newFakeMembershipRepo(users)
	svc := NewUserService(users, memberships, hasherForTests(t), nil)
	return &userFixture{svc: svc, users: users, memberships: memberships}
}

func TestProvisionNewUser(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	result, err := f.svc.ProvisionUser(context.Background(), tenant, "new@b.com", domain.RoleViewer)
	require.NoError(t, err)

	assert.NotEmpty(t, result.TemporaryPassword)
	assert.Equal(t, "new@b.com", result.User.Email)
	assert.Equal(t, domain.RoleViewer, result.Membership.Role)
	assert.Equal(t, tenant, result.Membership.TenantID)

	// The temporary password verifies against the stored hash.
	stored, err := f.users.GetByEmail(context.Background(), "new@b.com")
	require.NoError(t, err)
	assert.True(t, hasherForTests(t).Verify(stored.PasswordHash, result.TemporaryPassword))
}

func TestProvisionExistingUserAddsMembershipOnly(t *testing.T) {
	f := newUserFixture(t)
	tenant1 := uuid.NewString()
	tenant2 := uuid.NewString()

	first, err := f.svc.ProvisionUser(context.Background(), tenant1, "a@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	second, err := f.svc.ProvisionUser(context.Background(), tenant2, "a@b.com", domain.RoleViewer)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Empty(t, second.TemporaryPassword)

	memberships, err := f.memberships.ListByUser(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Len(t, memberships, 2)
}

func TestProvisionDuplicateMembershipConflicts(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	_, err := f.svc.ProvisionUser(context.Background(), tenant, "a@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = f.svc.ProvisionUser(context.Background(), tenant, "a@b.com", domain.RoleViewer)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeConflict, domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestGetTenantUserScoping(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()
	otherTenant := uuid.NewString()

	inside, err := f.svc.ProvisionUser(context.Background(), tenant, "in@b.com", domain.RoleViewer)
	require.NoError(t, err)
	outside, err := f.svc.ProvisionUser(context.Background(), otherTenant, "out@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	user, memberships, err := f.svc.GetTenantUser(context.Background(), tenant, inside.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "in@b.com", user.Email)
	assert.Len(t, memberships, 1)

	// Users outside the tenant read as not found, not forbidden.
	_, _, err = f.svc.GetTenantUser(context.Background(), tenant, outside.User.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
}

func TestRemoveFromTenantKeepsAccount(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	result, err := f.svc.ProvisionUser(context.Background(), tenant, "a@b.com", domain.RoleViewer)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveFromTenant(context.Background(), tenant, result.User.ID))

	_, err = f.memberships.GetByUserAndTenant(context.Background(), result.User.ID, tenant)
	assert.Error(t, err)

	// The account survives the revocation.
	_, err = f.users.GetByID(context.Background(), result.User.ID)
	assert.NoError(t, err)

	err = f.svc.RemoveFromTenant(context.Background(), tenant, result.User.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
}

func TestResetPasswordRotatesHash(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	result, err := f.svc.ProvisionUser(context.Background(), tenant, "a@b.com", domain.RoleViewer)
	require.NoError(t, err)

	tempPassword, err := f.svc.ResetPassword(context.Background(), tenant, result.User.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tempPassword)
	assert.NotEqual(t, result.TemporaryPassword, tempPassword)

	stored, err := f.users.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.True(t, hasherForTests(t).Verify(stored.PasswordHash, tempPassword))
	// The pre-reset password is dead.
	assert.False(t, hasherForTests(t).Verify(stored.PasswordHash, result.TemporaryPassword))
}

func TestResetPasswordOutsideTenant(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	outside, err := f.svc.ProvisionUser(context.Background(), uuid.NewString(), "out@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = f.svc.ResetPassword(context.Background(), tenant, outside.User.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
}

func TestListTenantUsers(t *testing.T) {
	f := newUserFixture(t)
	tenant := uuid.NewString()

	_, err := f.svc.ProvisionUser(context.Background(), tenant, "first@b.com", domain.RoleAdmin)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = f.svc.ProvisionUser(context.Background(), tenant, "second@b.com", domain.RoleViewer)
	require.NoError(t, err)
	_, err = f.svc.ProvisionUser(context.Background(), uuid.NewString(), "elsewhere@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	members, err := f.svc.ListTenantUsers(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "first@b.com", members[0].Email)
	assert.Equal(t, "second@b.com", members[1].Email)
}
