package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/you/usermgmt/domain"
)

// dummyHash keeps the password comparison on the login path even when the
// username is unknown, so response timing does not leak which half of the
// credential pair was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login implements domain.AuthService. Every failure path returns
// ErrInvalidCredentials so the response cannot distinguish an unknown
// username from a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.passwordSvc.Verify(dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenSvc.TTL()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.Generate(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("LOGIN_OK: user_id=%d session_id=%s", user.ID, session.ID)

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// Logout implements domain.AuthService. A token that does not resolve to a
// live session is not an error: there is simply nothing to revoke.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return false, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			return false, nil
		}
		return false, err
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	log.Printf("LOGOUT_OK: user_id=%d session_id=%s", session.UserID, session.ID)
	return true, nil
}

// Authenticate implements domain.AuthService
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	if session.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	return session, nil
}
