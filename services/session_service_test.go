package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartpark/status"
)

func setupSessionService(adminHash string) (*SessionService, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	service := NewSessionService(db, newStubRepo(), 24*time.Hour, adminHash)
	return service, mock
}

func TestSessionService_SignInClient_MissingFields(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	_, err := service.SignInClient(context.Background(), "", "jean@example.com")
	assert.ErrorIs(t, err, status.ErrMissingFields)

	_, err = service.SignInClient(context.Background(), "Jean Dupont", "")
	assert.ErrorIs(t, err, status.ErrMissingFields)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// matchAnyArgs relaxes argument matching; the session token inside the key is
// random, so only the command sequence is asserted.
func matchAnyArgs(expected, actual []interface{}) error { return nil }

func TestSessionService_SignInClient_Success(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	mock.CustomMatch(matchAnyArgs).ExpectHSet("session:", "role", RoleClient, "full_name", "Jean Dupont", "email", "jean@example.com").SetVal(3)
	mock.CustomMatch(matchAnyArgs).ExpectExpire("session:", 24*time.Hour).SetVal(true)

	session, err := service.SignInClient(context.Background(), "Jean Dupont", "jean@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, RoleClient, session.Role)
	assert.Equal(t, "jean@example.com", session.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_SignInClient_ExpireFailureSurfaces(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	mock.CustomMatch(matchAnyArgs).ExpectHSet("session:", "role", RoleClient, "full_name", "Jean Dupont", "email", "jean@example.com").SetVal(3)
	mock.CustomMatch(matchAnyArgs).ExpectExpire("session:", 24*time.Hour).SetErr(errors.New("expire failed"))

	// A session that cannot be given a TTL must not be handed out.
	_, err := service.SignInClient(context.Background(), "Jean Dupont", "jean@example.com")

	assert.EqualError(t, err, "expire failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_SignInAdmin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	service, mock := setupSessionService(string(hash))
	defer mock.ClearExpect()

	_, err = service.SignInAdmin(context.Background(), "wrong-password")

	assert.ErrorIs(t, err, status.ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_SignInAdmin_NoHashConfigured(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	// An unset hash must not behave like an empty password.
	_, err := service.SignInAdmin(context.Background(), "")

	assert.ErrorIs(t, err, status.ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Lookup_Success(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	mock.ExpectHGetAll("session:ABC123").SetVal(map[string]string{
		"role":      RoleClient,
		"full_name": "Jean Dupont",
		"email":     "jean@example.com",
	})

	session, err := service.Lookup(context.Background(), "ABC123")

	require.NoError(t, err)
	assert.Equal(t, "ABC123", session.Token)
	assert.Equal(t, RoleClient, session.Role)
	assert.Equal(t, "Jean Dupont", session.FullName)
	assert.Equal(t, "jean@example.com", session.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Lookup_NotFound(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	mock.ExpectHGetAll("session:MISSING").SetVal(map[string]string{})

	_, err := service.Lookup(context.Background(), "MISSING")

	assert.ErrorIs(t, err, status.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_Lookup_EmptyToken(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	_, err := service.Lookup(context.Background(), "")

	assert.ErrorIs(t, err, status.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionService_SignOut(t *testing.T) {
	service, mock := setupSessionService("")
	defer mock.ClearExpect()

	mock.ExpectDel("session:ABC123").SetVal(1)

	err := service.SignOut(context.Background(), "ABC123")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
