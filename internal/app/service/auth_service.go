package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ratehub/internal/common"
	"ratehub/internal/common/security"
	"ratehub/internal/common/validate"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	codec    *security.TokenCodec
	hasher   security.PasswordHasher
}

func NewAuthService(userRepo repository.UserRepository, codec *security.TokenCodec, hasher security.PasswordHasher) *AuthService {
	return &AuthService{userRepo: userRepo, codec: codec, hasher: hasher}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Signup self-registers a NORMAL_USER. The full validation chain runs before
// anything is hashed or written.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validate.NewUser(req.Name, req.Email, req.Password, req.Address, model.RoleNormalUser, model.Roles); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Address:        req.Address,
		Role:           model.RoleNormalUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Resolve turns a verified user id into the caller context for this request.
// A verified token pointing at a deleted account is ErrUnauthorized at the
// boundary, never ErrNotFound.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*model.CallerContext, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}
	return &model.CallerContext{UserID: user.ID, Role: user.Role}, nil
}

// AuthenticateAndAuthorize is the full chain for one request: verify the
// token, resolve the caller, consult the permission table. No caller is
// established -> ErrUnauthorized; established caller without the permission
// -> ErrForbidden.
func (s *AuthService) AuthenticateAndAuthorize(ctx context.Context, token string, op model.Operation) (*model.CallerContext, error) {
	userID, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}
	caller, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !model.RoleCan(caller.Role, op) {
		return nil, common.ErrForbidden
	}
	return caller, nil
}

// Profile returns the caller's own record, password hash stripped.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return common.ErrBadRequest
	}
	if err := validate.Password(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !s.hasher.Verify(req.CurrentPassword, user.HashedPassword) {
		return common.ErrUnauthorized
	}

	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}
