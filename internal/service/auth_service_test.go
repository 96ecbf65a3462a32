package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"milk-platform-be/internal/dto"
	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"
	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthFixture() (*fakeStore, *recordingMailer, IAuthService) {
	store := newFakeStore()
	mail := &recordingMailer{}
	svc := NewAuthService(store, mail, AuthSettings{
		JwtSecret: testSecret,
		TokenTTL:  time.Hour,
		LoginURL:  "https://milk.example/login",
	}, logger.NewNopLogger())
	return store, mail, svc
}

func TestSignupAndLogin(t *testing.T) {
	_, _, svc := newAuthFixture()

	signup, err := svc.SignupCustomer(context.Background(), &dto.CustomerSignupRequest{
		Name:     "Meera",
		Email:    " Meera@Example.com ",
		Password: "secret123",
		Address:  dto.AddressDto{City: "Surat"},
	})
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", signup.User.Email)
	assert.Equal(t, "customer", signup.User.Role)

	p, err := serverutils.ParseToken(testSecret, signup.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.Id, p.Id)
	assert.Equal(t, entity.UserRoleCustomer, p.Role)

	login, err := svc.Login(context.Background(), entity.UserRoleCustomer, &dto.LoginRequest{Email: "MEERA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, signup.User.Id, login.User.Id)

	_, err = svc.Login(context.Background(), entity.UserRoleCustomer, &dto.LoginRequest{Email: "meera@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, errInvalidCredentials)

	_, err = svc.Login(context.Background(), entity.UserRoleSeller, &dto.LoginRequest{Email: "meera@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, errInvalidCredentials, "role must match the login endpoint")

	_, err = svc.SignupCustomer(context.Background(), &dto.CustomerSignupRequest{Name: "Dup", Email: "meera@example.com", Password: "secret123"})
	assert.EqualError(t, err, "User already exists with this email")
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	store, _, svc := newAuthFixture()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	store.addUser(&entity.User{Id: uuid.New(), Email: "off@example.com", PasswordHash: hash, Role: entity.UserRoleSeller})

	_, err = svc.Login(context.Background(), entity.UserRoleSeller, &dto.LoginRequest{Email: "off@example.com", Password: "secret123"})
	assert.EqualError(t, err, "Account is deactivated")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestCreateSeller(t *testing.T) {
	store, mail, svc := newAuthFixture()
	admin := entity.Principal{Id: uuid.New(), Role: entity.UserRoleAdmin}

	_, err := svc.CreateSeller(context.Background(), entity.Principal{Id: uuid.New(), Role: entity.UserRoleSeller}, &dto.CreateSellerRequest{
		Name: "X", Email: "x@example.com", Password: "secret123", BusinessName: "X Dairy",
	})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	mail.err = errors.New("smtp down")
	res, err := svc.CreateSeller(context.Background(), admin, &dto.CreateSellerRequest{
		Name: "Gopal", Email: "gopal@example.com", Password: "secret123", BusinessName: " Gopal Farms ",
	})
	require.NoError(t, err, "a failed welcome email does not fail the account")
	assert.Equal(t, "seller", res.Role)
	assert.Equal(t, "Gopal Farms", res.BusinessName)
	assert.Equal(t, []string{"gopal@example.com"}, mail.sent)

	stored := store.user(res.Id)
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, admin.Id, *stored.CreatedBy)
	assert.True(t, stored.IsActive)

	me, err := svc.Me(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, "gopal@example.com", me.Email)
}

func TestAdminUserManagement(t *testing.T) {
	store := newFakeStore()
	svc := NewAdminService(store, logger.NewNopLogger())
	customer, seller := newCustomer(store), newSeller(store)
	admin := store.addUser(&entity.User{Id: uuid.New(), Email: "root@example.com", Role: entity.UserRoleAdmin, IsActive: true})

	sellers, err := svc.ListUsers(context.Background(), &dto.UserListQuery{Role: "seller"})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, seller.Id, sellers[0].Id)

	_, err = svc.ListUsers(context.Background(), &dto.UserListQuery{Role: "guest"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	res, err := svc.SetUserActive(context.Background(), customer.Id, false)
	require.NoError(t, err)
	assert.False(t, res.IsActive)
	assert.False(t, store.user(customer.Id).IsActive)

	_, err = svc.SetUserActive(context.Background(), admin.Id, false)
	assert.EqualError(t, err, "Admin accounts cannot be deactivated")

	_, err = svc.SetUserActive(context.Background(), uuid.New(), true)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	logs, err := svc.GetSystemLogs(context.Background(), &dto.LogListQuery{Limit: 10000})
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, err = svc.GetLogDetail(context.Background(), "missing")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
