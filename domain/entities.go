package domain

import "time"

// User represents a user account in the system
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	Age          int
	Phone        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Username string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresIn int64
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SortField enumerates the columns a user listing may be ordered by
type SortField string

const (
	SortByID        SortField = "id"
	SortByUsername  SortField = "username"
	SortByEmail     SortField = "email"
	SortByAge       SortField = "age"
	SortByCreatedAt SortField = "created_at"
)

// ValidSortField reports whether f names a sortable column
func ValidSortField(f SortField) bool {
	switch f {
	case SortByID, SortByUsername, SortByEmail, SortByAge, SortByCreatedAt:
		return true
	}
	return false
}

// ListParams bounds and orders a user listing
type ListParams struct {
	Limit      int
	Offset     int
	SortBy     SortField
	Descending bool
}

// SearchField enumerates the columns a search may target
type SearchField string

const (
	SearchByUsername SearchField = "username"
	SearchByEmail    SearchField = "email"
)

// ValidSearchField reports whether f names a searchable column
func ValidSearchField(f SearchField) bool {
	return f == SearchByUsername || f == SearchByEmail
}

// SearchParams describes a user search
type SearchParams struct {
	Query string
	Field SearchField
	Exact bool
}

// Stats holds aggregate service counters
type Stats struct {
	TotalUsers     int64
	ActiveUsers    int64
	InactiveUsers  int64
	ActiveSessions int64
	UserEmails     []string
}

// HealthReport holds liveness information
type HealthReport struct {
	Status         string
	Timestamp      time.Time
	MemoryUsers    int64
	MemorySessions int64
}
