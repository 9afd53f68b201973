package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/accountkeeper/internal/crypto"
	"github.com/iudanet/accountkeeper/internal/storage"
	"github.com/iudanet/accountkeeper/internal/validation"
)

func TestVerifyReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)

	createTestAccount(t, svc, "alice1", testPassword)

	tests := []struct {
		name         string
		req          ResetRequest
		wantStatus   ResetStatus
		wantStrength validation.PasswordStrength
		wantCanReset bool
	}{
		{
			name:         "passwords not identical checked first",
			req:          ResetRequest{Name: "nobody1", NewPassword: "New$Password123", RepeatedPassword: "New$Password124"},
			wantStatus:   ResetPasswordsNotIdentical,
			wantStrength: validation.PasswordGood,
		},
		{
			name:         "account not found",
			req:          ResetRequest{Name: "nobody1", NewPassword: "New$Password123", RepeatedPassword: "New$Password123"},
			wantStatus:   ResetAccountNotFound,
			wantStrength: validation.PasswordGood,
		},
		{
			name:         "same password",
			req:          ResetRequest{Name: "alice1", NewPassword: testPassword, RepeatedPassword: testPassword},
			wantStatus:   ResetPasswordNotNew,
			wantStrength: validation.PasswordGood,
		},
		{
			name:         "ready but weak",
			req:          ResetRequest{Name: "alice1", NewPassword: "weakpassword", RepeatedPassword: "weakpassword"},
			wantStatus:   ResetReadyToReset,
			wantStrength: validation.PasswordNoCapitals,
			wantCanReset: false,
		},
		{
			name:         "ready",
			req:          ResetRequest{Name: "alice1", NewPassword: "New$Password123", RepeatedPassword: "New$Password123"},
			wantStatus:   ResetReadyToReset,
			wantStrength: validation.PasswordGood,
			wantCanReset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := svc.VerifyReset(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, ticket.Status)
			assert.Equal(t, tt.wantStrength, ticket.Strength)
			assert.Equal(t, tt.wantCanReset, ticket.CanReset())
		})
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, spy := setupTestService(t)

	created := createTestAccount(t, svc, "alice1", testPassword)
	newPassword := "New$Password123"

	ticket, err := svc.VerifyReset(ctx, ResetRequest{Name: "alice1", NewPassword: newPassword, RepeatedPassword: newPassword})
	require.NoError(t, err)
	require.True(t, ticket.CanReset())

	done, err := svc.Reset(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, ResetDone, done.Status)
	assert.Equal(t, "alice1", done.Name)
	assert.Empty(t, done.oldHash)
	assert.Empty(t, done.newHash)
	assert.Equal(t, 1, spy.updateCalls)

	stored, err := svc.store.GetUser(ctx, "alice1")
	require.NoError(t, err)
	assert.Equal(t, created.User.Salt, stored.Salt, "соль не перегенерируется")
	assert.Equal(t, crypto.ComputeHash(newPassword, created.User.Salt), stored.Hash)

	result, err := svc.Verify(ctx, "alice1", newPassword)
	require.NoError(t, err)
	assert.Equal(t, AuthAuthenticated, result.Status)

	result, err = svc.Verify(ctx, "alice1", testPassword)
	require.NoError(t, err)
	assert.Equal(t, AuthPasswordIncorrect, result.Status)
}

func TestReset_SamePasswordNeverMutates(t *testing.T) {
	ctx := context.Background()
	svc, spy := setupTestService(t)

	createTestAccount(t, svc, "alice1", testPassword)

	ticket, err := svc.VerifyReset(ctx, ResetRequest{Name: "alice1", NewPassword: testPassword, RepeatedPassword: testPassword})
	require.NoError(t, err)
	require.Equal(t, ResetPasswordNotNew, ticket.Status)

	_, err = svc.Reset(ctx, ticket)
	assert.ErrorIs(t, err, ErrResetNotAllowed)
	assert.Zero(t, spy.updateCalls)
}

func TestReset_NotAllowed(t *testing.T) {
	ctx := context.Background()
	svc, spy := setupTestService(t)

	createTestAccount(t, svc, "alice1", testPassword)

	tests := []struct {
		name string
		req  ResetRequest
	}{
		{name: "weak password", req: ResetRequest{Name: "alice1", NewPassword: "weakpassword", RepeatedPassword: "weakpassword"}},
		{name: "mismatch", req: ResetRequest{Name: "alice1", NewPassword: "New$Password123", RepeatedPassword: "x"}},
		{name: "missing account", req: ResetRequest{Name: "nobody1", NewPassword: "New$Password123", RepeatedPassword: "New$Password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := svc.VerifyReset(ctx, tt.req)
			require.NoError(t, err)

			_, err = svc.Reset(ctx, ticket)
			assert.ErrorIs(t, err, ErrResetNotAllowed)
		})
	}

	// Пустой тикет, собранный вручную
	_, err := svc.Reset(ctx, ResetTicket{Name: "alice1"})
	assert.ErrorIs(t, err, ErrResetNotAllowed)

	assert.Zero(t, spy.updateCalls)
}

func TestReset_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)

	createTestAccount(t, svc, "alice1", testPassword)

	first, err := svc.VerifyReset(ctx, ResetRequest{Name: "alice1", NewPassword: "First$Pass1234", RepeatedPassword: "First$Pass1234"})
	require.NoError(t, err)
	second, err := svc.VerifyReset(ctx, ResetRequest{Name: "alice1", NewPassword: "Second$Pass1234", RepeatedPassword: "Second$Pass1234"})
	require.NoError(t, err)

	_, err = svc.Reset(ctx, first)
	require.NoError(t, err)

	// Второй тикет устарел: хеш уже другой
	_, err = svc.Reset(ctx, second)
	assert.ErrorIs(t, err, storage.ErrConcurrentModification)

	result, err := svc.Verify(ctx, "alice1", "First$Pass1234")
	require.NoError(t, err)
	assert.Equal(t, AuthAuthenticated, result.Status)
}
