package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratehub/internal/common"
	"ratehub/internal/common/security"
	"ratehub/internal/common/validate"
	"ratehub/internal/domain/model"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *security.TokenCodec) {
	repo := newStubUserRepo()
	codec := security.NewTokenCodec([]byte("test-secret"), time.Hour)
	hasher := security.NewPasswordHasher(4)
	return NewAuthService(repo, codec, hasher), repo, codec
}

func seedUser(t *testing.T, repo *stubUserRepo, id, email, role, password string) {
	t.Helper()
	hasher := security.NewPasswordHasher(4)
	hashed, err := hasher.Hash(password)
	require.NoError(t, err)
	repo.add(model.User{
		ID:             id,
		Name:           "Seeded Account For Service Tests",
		Email:          email,
		HashedPassword: hashed,
		Address:        "1 Test Street",
		Role:           role,
	})
}

func TestAuthService_Signup(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	ctx := context.Background()

	req := SignupRequest{
		Name:     "Jonathan Demo Account User",
		Email:    "jonathan@example.com",
		Password: "Passw0rd!",
		Address:  "42 Oak Avenue, Boston",
	}

	resp, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleNormalUser, resp.User.Role)
	assert.Empty(t, resp.User.HashedPassword)

	// The stored record keeps a hash, never the plaintext.
	stored, err := repo.FindByEmail(ctx, "jonathan@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "Passw0rd!", stored.HashedPassword)

	// Duplicate email is a conflict.
	_, err = svc.Signup(ctx, req)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestAuthService_Signup_ValidationFirstFailureWins(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{
		Name:     "short",
		Email:    "bad-email",
		Password: "weak",
		Address:  "somewhere",
	})
	var fieldErr *validate.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	ctx := context.Background()
	seedUser(t, repo, "u-1", "alice@example.com", model.RoleNormalUser, "Passw0rd!")

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.HashedPassword)

	// Wrong password and unknown email both collapse to the same generic 401.
	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "WrongPass1!"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "Passw0rd!"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestAuthService_Resolve_DeletedAccountIsUnauthorized(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Resolve(context.Background(), "no-such-user")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	assert.False(t, errors.Is(err, common.ErrNotFound))
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	svc, repo, codec := newAuthFixture()
	ctx := context.Background()
	seedUser(t, repo, "owner-1", "owner@example.com", model.RoleStoreOwner, "Passw0rd!")
	seedUser(t, repo, "user-1", "user@example.com", model.RoleNormalUser, "Passw0rd!")

	ownerToken, err := codec.Issue("owner-1", model.RoleStoreOwner)
	require.NoError(t, err)
	userToken, err := codec.Issue("user-1", model.RoleNormalUser)
	require.NoError(t, err)

	// Happy path: owner asks for the owner operation.
	caller, err := svc.AuthenticateAndAuthorize(ctx, ownerToken, model.OpViewStoreReport)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", caller.UserID)
	assert.Equal(t, model.RoleStoreOwner, caller.Role)

	// Valid caller, wrong role: Forbidden, not Unauthorized.
	_, err = svc.AuthenticateAndAuthorize(ctx, userToken, model.OpViewStoreReport)
	assert.True(t, errors.Is(err, common.ErrForbidden))
	assert.False(t, errors.Is(err, common.ErrUnauthorized))

	// No token: Unauthorized.
	_, err = svc.AuthenticateAndAuthorize(ctx, "", model.OpViewStoreReport)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	// Token for an account that no longer exists: Unauthorized.
	ghostToken, err := codec.Issue("deleted-user", model.RoleStoreOwner)
	require.NoError(t, err)
	_, err = svc.AuthenticateAndAuthorize(ctx, ghostToken, model.OpViewStoreReport)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestAuthenticateAndAuthorize_ForgedTokenNeverForbidden(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	ctx := context.Background()
	seedUser(t, repo, "owner-1", "owner@example.com", model.RoleStoreOwner, "Passw0rd!")

	// Syntactically valid JWT signed with the wrong key.
	forger := security.NewTokenCodec([]byte("attacker-secret"), time.Hour)
	forged, err := forger.Issue("owner-1", model.RoleSystemAdmin)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(forged, ".")))

	_, err = svc.AuthenticateAndAuthorize(ctx, forged, model.OpManageUsers)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	assert.False(t, errors.Is(err, common.ErrForbidden))
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	ctx := context.Background()
	seedUser(t, repo, "u-1", "alice@example.com", model.RoleNormalUser, "Passw0rd!")

	// Wrong current password.
	err := svc.ChangePassword(ctx, "u-1", ChangePasswordRequest{CurrentPassword: "Nope1234!", NewPassword: "NewPassw0rd!"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	// New password must clear the validator.
	err = svc.ChangePassword(ctx, "u-1", ChangePasswordRequest{CurrentPassword: "Passw0rd!", NewPassword: "weak"})
	assert.True(t, errors.Is(err, common.ErrValidation))

	// Success, old password stops working.
	err = svc.ChangePassword(ctx, "u-1", ChangePasswordRequest{CurrentPassword: "Passw0rd!", NewPassword: "NewPassw0rd!"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "NewPassw0rd!"})
	assert.NoError(t, err)
}
