package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/usermgmt/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64"`
	Email        string `gorm:"index;size:255"`
	PasswordHash string `gorm:"column:password"`
	Age          int
	Phone        string `gorm:"size:32"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// AutoMigrate applies the users schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&DBUser{})
}

// Create implements domain.UserRepository. The unique index on username is
// the last line of defense against racing creates; duplicate-key errors are
// mapped to the conflict sentinel.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, params domain.ListParams) ([]*domain.User, error) {
	sortBy := params.SortBy
	if !domain.ValidSortField(sortBy) {
		sortBy = domain.SortByID
	}
	direction := "asc"
	if params.Descending {
		direction = "desc"
	}

	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Order(string(sortBy) + " " + direction).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbUsers), nil
}

// Search implements domain.UserRepository
func (r *UserRepositoryImpl) Search(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
	if !domain.ValidSearchField(params.Field) {
		return nil, fmt.Errorf("unsearchable field %q", params.Field)
	}

	q := r.db.WithContext(ctx).Order("id asc")
	column := string(params.Field)
	if params.Exact {
		q = q.Where(column+" = ?", params.Query)
	} else {
		q = q.Where(column+` LIKE ? ESCAPE '\'`, "%"+escapeLike(params.Query)+"%")
	}

	var dbUsers []DBUser
	if err := q.Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbUsers), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID).Updates(map[string]any{
		"username":  dbUser.Username,
		"email":     dbUser.Email,
		"password":  dbUser.PasswordHash,
		"age":       dbUser.Age,
		"phone":     dbUser.Phone,
		"is_active": dbUser.IsActive,
	}).Error
	if err != nil && isDuplicate(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CountByStatus implements domain.UserRepository
func (r *UserRepositoryImpl) CountByStatus(ctx context.Context) (total, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&DBUser{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&DBUser{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// Emails implements domain.UserRepository
func (r *UserRepositoryImpl) Emails(ctx context.Context) ([]string, error) {
	emails := []string{}
	err := r.db.WithContext(ctx).Model(&DBUser{}).Order("id asc").Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite driver versions that predate error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike neutralizes LIKE metacharacters in user-supplied queries
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Age:          user.Age,
		Phone:        user.Phone,
		IsActive:     user.IsActive,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Age:          dbUser.Age,
		Phone:        dbUser.Phone,
		IsActive:     dbUser.IsActive,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) dbToDomainSlice(dbUsers []DBUser) []*domain.User {
	users := make([]*domain.User, len(dbUsers))
	for i := range dbUsers {
		users[i] = r.dbToDomain(&dbUsers[i])
	}
	return users
}
