package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"smartpark/models"
	"smartpark/repository"
	"smartpark/status"
	"smartpark/utils"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"

	sessionTokenBytes = 24
)

// SessionService hands out explicit session objects instead of the ambient
// identity the original browser client kept in local storage. Sessions are
// identity envelopes, not authentication; the admin role alone is gated by a
// password.
type SessionService struct {
	redis     *redis.Client
	repo      repository.ParkingRepository
	ttl       time.Duration
	adminHash string
}

func NewSessionService(redisClient *redis.Client, repo repository.ParkingRepository, ttl time.Duration, adminPasswordHash string) *SessionService {
	return &SessionService{
		redis:     redisClient,
		repo:      repo,
		ttl:       ttl,
		adminHash: adminPasswordHash,
	}
}

// SignInClient registers the client if needed and mints a session token.
func (s *SessionService) SignInClient(ctx context.Context, fullName, email string) (*models.Session, error) {
	if fullName == "" || email == "" {
		return nil, status.ErrMissingFields
	}

	if err := s.repo.UpsertClient(ctx, models.Client{FullName: fullName, Email: email}); err != nil {
		return nil, err
	}

	return s.store(ctx, models.Session{
		Role:     RoleClient,
		FullName: fullName,
		Email:    email,
	})
}

// SignInAdmin checks the password against the configured bcrypt hash.
func (s *SessionService) SignInAdmin(ctx context.Context, password string) (*models.Session, error) {
	if s.adminHash == "" {
		return nil, status.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return nil, status.ErrInvalidCredentials
	}

	return s.store(ctx, models.Session{Role: RoleAdmin})
}

// Lookup resolves a token back into a session.
func (s *SessionService) Lookup(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, status.ErrSessionNotFound
	}

	data, err := s.redis.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, status.ErrSessionNotFound
	}

	return &models.Session{
		Token:    token,
		Role:     data["role"],
		FullName: data["full_name"],
		Email:    data["email"],
	}, nil
}

// SignOut drops the session.
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKey(token)).Err()
}

func (s *SessionService) store(ctx context.Context, session models.Session) (*models.Session, error) {
	token, err := utils.GenerateToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}
	session.Token = token

	key := sessionKey(token)
	if err := s.redis.HSet(ctx, key, map[string]any{
		"role":      session.Role,
		"full_name": session.FullName,
		"email":     session.Email,
	}).Err(); err != nil {
		return nil, err
	}
	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, err
	}

	return &session, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
