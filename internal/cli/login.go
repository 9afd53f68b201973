package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/accountkeeper/internal/account"
	"github.com/iudanet/accountkeeper/internal/storage"
)

func (c *Cli) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Check a username and password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.readArgOrPrompt(args, "Username: ")
			if err != nil {
				return err
			}
			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			result, err := c.service.Verify(cmd.Context(), name, password)
			if err != nil {
				return err
			}

			c.io.Println(result.Status.Message())

			switch result.Status {
			case account.AuthAuthenticated:
				printUser(c, result.User)
				return nil
			case account.AuthAccountNotFound:
				return fmt.Errorf("%w: %s", storage.ErrUserNotFound, name)
			default:
				return ErrAuthenticationFailed
			}
		},
	}
}
