package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
)

// UserHandlers handles user management HTTP requests
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Phone    string `json:"phone"`
}

// UpdateUserRequest represents a partial user update request
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// UserResponse is the wire representation of a user record. The password
// hash never appears here.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

// Create handles POST /users
func (h *UserHandlers) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), domain.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Phone:    req.Phone,
	})
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": ve.Error()})
			return
		}
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /users/:id
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// List handles GET /users. Unparseable paging values fall back to defaults;
// an out-of-range offset yields an empty list, never an error.
func (h *UserHandlers) List(c *gin.Context) {
	params := domain.ListParams{
		SortBy: domain.SortField(c.DefaultQuery("sort_by", string(domain.SortByID))),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		params.Offset = offset
	}
	params.Descending = c.Query("order") == "desc"

	users, err := h.userSvc.List(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// Update handles PUT /users/:id (behind session auth)
func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, domain.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": ve.Error()})
			return
		}
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users/:id (behind session auth)
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Search handles GET /users/search
func (h *UserHandlers) Search(c *gin.Context) {
	exact, _ := strconv.ParseBool(c.DefaultQuery("exact", "false"))
	params := domain.SearchParams{
		Query: c.Query("q"),
		Field: domain.SearchField(c.DefaultQuery("field", string(domain.SearchByUsername))),
		Exact: exact,
	}

	users, err := h.userSvc.Search(c.Request.Context(), params)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// parseUserID extracts the numeric :id path parameter, writing the 400
// response itself when the token is not a positive integer.
func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID format"})
		return 0, false
	}
	return uint(id), true
}
