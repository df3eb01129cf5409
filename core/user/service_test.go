package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/user"
	emailsvc "github.com/yacinedz/siyaqa/services/email"
	inmemdb "github.com/yacinedz/siyaqa/storage/database/inmem"
)

func newService(t *testing.T) (user.ServiceInterface, user.Repository) {
	t.Helper()
	conf := core.NewConfig()
	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	nu := user.NewUser{
		Email:    "amine.benali@test.dz",
		FullName: "Amine Benali",
		Phone:    "0550123456",
		Gender:   "male",
		Address:  "12 Rue Didouche",
		State:    "Alger",
		Password: "S3cure-pass",
		Role:     "student",
	}
	usr, err := svc.Register(ctx, nu)
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.NoError(t, usr.CheckPassword("S3cure-pass"))
	assert.Error(t, usr.CheckPassword("wrong"))

	// duplicate email
	_, err = svc.Register(ctx, nu)
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{
		Email:    "lina.cherif@test.dz",
		FullName: "Lina Cherif",
		Phone:    "0550123457",
		Gender:   "female",
		Address:  "3 Rue Hassiba",
		State:    "Oran",
		Password: "S3cure-pass",
		Role:     "teacher",
	})
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, usr.Email, "S3cure-pass")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "Lina.Cherif@Test.DZ", "S3cure-pass")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, usr.Email, "nope")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@test.dz", "S3cure-pass")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		usr.IsActive = false
		_, err := repo.UpdateUser(ctx, usr)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, usr.Email, "S3cure-pass")
		assert.ErrorIs(t, err, user.ErrAccountDeactivated)
	})
}
