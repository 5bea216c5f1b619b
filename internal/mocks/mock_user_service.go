package mocks

import (
	"context"

	"github.com/you/usermgmt/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	CreateFunc func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetFunc    func(ctx context.Context, id uint) (*domain.User, error)
	ListFunc   func(ctx context.Context, params domain.ListParams) ([]*domain.User, error)
	UpdateFunc func(ctx context.Context, id uint, input domain.UpdateUserInput) (*domain.User, error)
	DeleteFunc func(ctx context.Context, id uint) error
	SearchFunc func(ctx context.Context, params domain.SearchParams) ([]*domain.User, error)
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// Create creates a user
func (m *MockUserService) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	// Default behavior: success, echo the input back as a stored record
	return &domain.User{
		ID:       1,
		Username: input.Username,
		Email:    input.Email,
		Age:      input.Age,
		Phone:    input.Phone,
		IsActive: true,
	}, nil
}

// Get fetches a user by id
func (m *MockUserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// List returns a page of users
func (m *MockUserService) List(ctx context.Context, params domain.ListParams) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	// Default behavior: empty page
	return []*domain.User{}, nil
}

// Update applies a partial update
func (m *MockUserService) Update(ctx context.Context, id uint, input domain.UpdateUserInput) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, input)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Delete removes a user
func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: not found
	return domain.ErrUserNotFound
}

// Search returns users matching a query
func (m *MockUserService) Search(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, params)
	}
	// Default behavior: no matches
	return []*domain.User{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
