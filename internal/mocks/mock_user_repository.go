package mocks

import (
	"context"

	"github.com/you/usermgmt/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	ListFunc           func(ctx context.Context, params domain.ListParams) ([]*domain.User, error)
	SearchFunc         func(ctx context.Context, params domain.SearchParams) ([]*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	DeleteFunc         func(ctx context.Context, id uint) error
	CountByStatusFunc  func(ctx context.Context) (int64, int64, error)
	EmailsFunc         func(ctx context.Context) ([]string, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success, assign an id
	user.ID = 1
	return nil
}

// FindByID finds a user by id
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// List returns a page of users
func (m *MockUserRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	// Default behavior: empty page
	return []*domain.User{}, nil
}

// Search returns users matching the query
func (m *MockUserRepository) Search(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, params)
	}
	// Default behavior: no matches
	return []*domain.User{}, nil
}

// Update updates a user record
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Delete removes a user record
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// CountByStatus returns total and active user counts
func (m *MockUserRepository) CountByStatus(ctx context.Context) (int64, int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	// Default behavior: empty store
	return 0, 0, nil
}

// Emails returns all user email addresses
func (m *MockUserRepository) Emails(ctx context.Context) ([]string, error) {
	if m.EmailsFunc != nil {
		return m.EmailsFunc(ctx)
	}
	// Default behavior: empty store
	return []string{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
