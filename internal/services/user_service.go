package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/you/usermgmt/domain"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository, passwordSvc domain.PasswordService) domain.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// Create implements domain.UserService. Validation runs before the store is
// touched; the repository's unique index backs up the early duplicate check
// under concurrent creates.
func (s *UserServiceImpl) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if err := ValidateNewUser(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Age:          input.Age,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("USER_CREATED: user_id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Get implements domain.UserService
func (s *UserServiceImpl) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context, params domain.ListParams) ([]*domain.User, error) {
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if !domain.ValidSortField(params.SortBy) {
		params.SortBy = domain.SortByID
	}
	return s.userRepo.List(ctx, params)
}

// Update implements domain.UserService. Only fields present in the input are
// validated and applied.
func (s *UserServiceImpl) Update(ctx context.Context, id uint, input domain.UpdateUserInput) (*domain.User, error) {
	if err := ValidateUserUpdate(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(ctx, *input.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := s.passwordSvc.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("USER_UPDATED: user_id=%d", user.ID)
	return s.userRepo.FindByID(ctx, id)
}

// Delete implements domain.UserService
func (s *UserServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("USER_DELETED: user_id=%d", id)
	return nil
}

// Search implements domain.UserService
func (s *UserServiceImpl) Search(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
	ve := &domain.ValidationError{}
	if params.Query == "" {
		ve.Add("q", "must not be empty")
	}
	if params.Field == "" {
		params.Field = domain.SearchByUsername
	}
	if !domain.ValidSearchField(params.Field) {
		ve.Add("field", "must be one of: username, email")
	}
	if ve.HasErrors() {
		return nil, ve
	}
	return s.userRepo.Search(ctx, params)
}
