package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/accountkeeper/internal/account"
	"github.com/iudanet/accountkeeper/internal/storage"
)

func (c *Cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [username]",
		Short: "Delete an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.io.Println("=== Delete Account ===")
			c.io.Println()

			name, err := c.readArgOrPrompt(args, "Username: ")
			if err != nil {
				return err
			}

			ticket, err := c.service.VerifyDelete(ctx, name)
			if err != nil {
				return err
			}
			if ticket.Status == account.DeleteAccountNotFound {
				c.io.Println(ticket.Status.Message())
				return fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
			}

			c.io.Printf("About to delete: %s\n", name)
			ok, err := c.io.Confirm("Are you sure you want to delete this account? (yes/no): ")
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				c.io.Println("Deletion cancelled.")
				return nil
			}

			done, err := c.service.Delete(ctx, ticket)
			if err != nil {
				return err
			}

			c.io.Println("✓", done.Status.Message())
			return nil
		},
	}
}
