package account

import (
	"context"
	"fmt"
)

// DeleteStatus is the state of a delete flow
type DeleteStatus int

const (
	DeleteAccountNotFound DeleteStatus = iota
	DeleteVerified
	DeleteDone
)

func (s DeleteStatus) String() string {
	switch s {
	case DeleteAccountNotFound:
		return "account_not_found"
	case DeleteVerified:
		return "verified"
	case DeleteDone:
		return "done"
	default:
		return fmt.Sprintf("DeleteStatus(%d)", int(s))
	}
}

func (s DeleteStatus) Message() string {
	switch s {
	case DeleteAccountNotFound:
		return "This user does not exist."
	case DeleteDone:
		return "The user has been successfully deleted."
	default:
		return ""
	}
}

// DeleteTicket is produced by VerifyDelete and consumed by Delete.
// Only a ticket issued by VerifyDelete can be applied.
type DeleteTicket struct {
	Name     string
	Status   DeleteStatus
	verified bool
}

// VerifyDelete checks that the account exists
func (s *Service) VerifyDelete(ctx context.Context, name string) (DeleteTicket, error) {
	exists, err := s.store.UserExists(ctx, name)
	if err != nil {
		return DeleteTicket{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return DeleteTicket{Name: name, Status: DeleteAccountNotFound}, nil
	}

	return DeleteTicket{Name: name, Status: DeleteVerified, verified: true}, nil
}

// Delete removes a verified account
func (s *Service) Delete(ctx context.Context, ticket DeleteTicket) (DeleteTicket, error) {
	if ticket.Status != DeleteVerified || !ticket.verified {
		return ticket, fmt.Errorf("%w: status %s", ErrDeleteNotAllowed, ticket.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteUser(ctx, ticket.Name); err != nil {
		return ticket, fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "account deleted", "name", ticket.Name)

	return DeleteTicket{Name: ticket.Name, Status: DeleteDone}, nil
}
