package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/accountkeeper/internal/account"
	"github.com/iudanet/accountkeeper/internal/storage"
)

func (c *Cli) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [username]",
		Short: "Set a new password for an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.io.Println("=== Reset Password ===")
			c.io.Println()

			name, err := c.readArgOrPrompt(args, "Username: ")
			if err != nil {
				return err
			}
			newPassword, err := c.io.ReadPassword("New password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			repeated, err := c.io.ReadPassword("Repeat new password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			ticket, err := c.service.VerifyReset(ctx, account.ResetRequest{
				Name:             name,
				NewPassword:      newPassword,
				RepeatedPassword: repeated,
			})
			if err != nil {
				return err
			}

			switch ticket.Status {
			case account.ResetPasswordsNotIdentical:
				c.io.Println(ticket.Status.Message())
				return ErrPasswordsNotIdentical
			case account.ResetAccountNotFound:
				c.io.Println(ticket.Status.Message())
				return fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
			case account.ResetPasswordNotNew:
				c.io.Println(ticket.Status.Message())
				return ErrPasswordNotNew
			}

			if !ticket.CanReset() {
				c.io.Printf("  ✗ %s\n", ticket.Strength.Message())
				return ticket.Strength.Err()
			}

			ok, err := c.io.Confirm(fmt.Sprintf("Reset password for %s? (yes/no): ", name))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				c.io.Println("Password reset cancelled.")
				return nil
			}

			done, err := c.service.Reset(ctx, ticket)
			if err != nil {
				return err
			}

			c.io.Println("✓", done.Status.Message())
			return nil
		},
	}
}
