package services

import (
	"regexp"

	"github.com/you/usermgmt/domain"
)

// Field limits for user records. Checked before any store mutation.
const (
	maxUsernameLen = 50
	maxEmailLen    = 254
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input bound
	minAge         = 16
	maxAge         = 150
	maxPhoneLen    = 32
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]+$`)
)

// ValidateNewUser checks every field of a creation request and collects all
// failures so a client sees the full picture in one round trip.
func ValidateNewUser(input domain.CreateUserInput) error {
	ve := &domain.ValidationError{}
	validateUsername(ve, input.Username)
	validateEmail(ve, input.Email)
	validatePassword(ve, input.Password)
	validateAge(ve, input.Age)
	if input.Phone != "" {
		validatePhone(ve, input.Phone)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateUserUpdate checks only the fields present in a partial update
func ValidateUserUpdate(input domain.UpdateUserInput) error {
	ve := &domain.ValidationError{}
	if input.Username != nil {
		validateUsername(ve, *input.Username)
	}
	if input.Email != nil {
		validateEmail(ve, *input.Email)
	}
	if input.Password != nil {
		validatePassword(ve, *input.Password)
	}
	if input.Age != nil {
		validateAge(ve, *input.Age)
	}
	if input.Phone != nil && *input.Phone != "" {
		validatePhone(ve, *input.Phone)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateUsername(ve *domain.ValidationError, username string) {
	if username == "" {
		ve.Add("username", "must not be empty")
		return
	}
	if len(username) > maxUsernameLen {
		ve.Add("username", "must be at most %d characters", maxUsernameLen)
		return
	}
	if !usernameRe.MatchString(username) {
		ve.Add("username", "may only contain letters, digits and underscores")
	}
}

func validateEmail(ve *domain.ValidationError, email string) {
	if email == "" {
		ve.Add("email", "must not be empty")
		return
	}
	if len(email) > maxEmailLen || !emailRe.MatchString(email) {
		ve.Add("email", "must be a valid email address")
	}
}

func validatePassword(ve *domain.ValidationError, password string) {
	if len(password) < minPasswordLen {
		ve.Add("password", "must be at least %d characters", minPasswordLen)
		return
	}
	if len(password) > maxPasswordLen {
		ve.Add("password", "must be at most %d characters", maxPasswordLen)
	}
}

func validateAge(ve *domain.ValidationError, age int) {
	if age < minAge || age > maxAge {
		ve.Add("age", "must be between %d and %d", minAge, maxAge)
	}
}

func validatePhone(ve *domain.ValidationError, phone string) {
	if len(phone) > maxPhoneLen {
		ve.Add("phone", "must be at most %d characters", maxPhoneLen)
		return
	}
	if !phoneRe.MatchString(phone) {
		ve.Add("phone", "may only contain digits and a leading +")
	}
}
