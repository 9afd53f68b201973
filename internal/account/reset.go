package account

import (
	"context"
	"fmt"

	"github.com/iudanet/accountkeeper/internal/crypto"
	"github.com/iudanet/accountkeeper/internal/validation"
)

// ResetRequest is the reset form
type ResetRequest struct {
	Name             string
	NewPassword      string
	RepeatedPassword string
}

// ResetStatus is the state of a reset flow
type ResetStatus int

const (
	ResetPasswordsNotIdentical ResetStatus = iota
	ResetAccountNotFound
	ResetPasswordNotNew
	ResetReadyToReset
	ResetDone
)

func (s ResetStatus) String() string {
	switch s {
	case ResetPasswordsNotIdentical:
		return "passwords_not_identical"
	case ResetAccountNotFound:
		return "account_not_found"
	case ResetPasswordNotNew:
		return "password_not_new"
	case ResetReadyToReset:
		return "ready_to_reset"
	case ResetDone:
		return "done"
	default:
		return fmt.Sprintf("ResetStatus(%d)", int(s))
	}
}

func (s ResetStatus) Message() string {
	switch s {
	case ResetPasswordsNotIdentical:
		return "The passwords are not identical."
	case ResetAccountNotFound:
		return "This user does not exist."
	case ResetPasswordNotNew:
		return "The new password cannot be the same as the old one."
	case ResetDone:
		return "The password has been successfully reset."
	default:
		return ""
	}
}

// ResetTicket is produced by VerifyReset and consumed by Reset.
// Hashes are kept unexported so the ticket cannot be forged outside the package.
type ResetTicket struct {
	Name     string
	oldHash  string
	newHash  string
	Status   ResetStatus
	Strength validation.PasswordStrength
}

// CanReset is true only for a ready ticket whose new password is strong enough
func (t ResetTicket) CanReset() bool {
	return t.Status == ResetReadyToReset && t.Strength == validation.PasswordGood
}

// VerifyReset runs the checks in order: repeated password, account, not-new.
// The new hash reuses the account's existing salt.
func (s *Service) VerifyReset(ctx context.Context, req ResetRequest) (ResetTicket, error) {
	ticket := ResetTicket{
		Name:     req.Name,
		Strength: validation.CheckPasswordStrength(req.NewPassword),
	}

	if req.NewPassword != req.RepeatedPassword {
		ticket.Status = ResetPasswordsNotIdentical
		return ticket, nil
	}

	user, found, err := s.lookup(ctx, req.Name)
	if err != nil {
		return ResetTicket{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		ticket.Status = ResetAccountNotFound
		return ticket, nil
	}

	newHash := crypto.ComputeHash(req.NewPassword, user.Salt)
	if newHash == user.Hash {
		ticket.Status = ResetPasswordNotNew
		return ticket, nil
	}

	ticket.Status = ResetReadyToReset
	ticket.oldHash = user.Hash
	ticket.newHash = newHash

	return ticket, nil
}

// Reset applies a ready ticket with a compare-and-swap on the stored hash.
// The returned ticket is ResetDone and carries no hash material.
func (s *Service) Reset(ctx context.Context, ticket ResetTicket) (ResetTicket, error) {
	if !ticket.CanReset() {
		return ticket, fmt.Errorf("%w: status %s, password %s", ErrResetNotAllowed, ticket.Status, ticket.Strength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdatePasswordHash(ctx, ticket.Name, ticket.oldHash, ticket.newHash); err != nil {
		return ticket, fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset", "name", ticket.Name)

	return ResetTicket{Name: ticket.Name, Status: ResetDone}, nil
}
