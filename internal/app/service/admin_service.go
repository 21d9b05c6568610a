package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"ratehub/internal/common"
	"ratehub/internal/common/security"
	"ratehub/internal/common/validate"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/repository"
)

// AdminService covers the administrator-only mutations: creating accounts of
// any role and binding stores to their owners.
type AdminService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	hasher    security.PasswordHasher
}

func NewAdminService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, hasher security.PasswordHasher) *AdminService {
	return &AdminService{userRepo: userRepo, storeRepo: storeRepo, hasher: hasher}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id"`
}

func (s *AdminService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if err := validate.NewUser(req.Name, req.Email, req.Password, req.Address, req.Role, model.Roles); err != nil {
		return nil, err
	}

	// Explicit existence check so the client gets a clean conflict even on
	// storage engines that surface the unique violation differently.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user with this email already exists: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
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
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = ""
	return user, nil
}

// CreateStore binds a new store to a STORE_OWNER. Ownership is 1:1; a second
// store for the same owner is a conflict.
func (s *AdminService) CreateStore(ctx context.Context, req CreateStoreRequest) (*model.Store, error) {
	if req.Name == "" || req.Email == "" || req.Address == "" || req.OwnerID == "" {
		return nil, common.ErrBadRequest
	}
	if err := validate.Email(req.Email); err != nil {
		return nil, err
	}
	if err := validate.Address(req.Address); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("owner does not exist: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	if owner.Role != model.RoleStoreOwner {
		return nil, fmt.Errorf("owner must have the STORE_OWNER role: %w", common.ErrBadRequest)
	}

	if _, err := s.storeRepo.FindByOwner(ctx, req.OwnerID); err == nil {
		return nil, fmt.Errorf("owner already has a store: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing store: %w", err)
	}

	store := &model.Store{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Slug:    slug.Make(req.Name),
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.UserWithStore, error) {
	users, err := s.userRepo.ListWithStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
