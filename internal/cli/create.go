package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/accountkeeper/internal/account"
	"github.com/iudanet/accountkeeper/internal/models"
	"github.com/iudanet/accountkeeper/internal/storage"
)

func (c *Cli) createCommand() *cobra.Command {
	var mail, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			c.io.Println("=== Create Account ===")
			c.io.Println()

			draft, err := c.service.NewCreateDraft()
			if err != nil {
				return fmt.Errorf("failed to generate salt: %w", err)
			}

			if mail == "" {
				if mail, err = c.io.ReadInput("E-mail: "); err != nil {
					return fmt.Errorf("failed to read e-mail: %w", err)
				}
			}
			if name == "" {
				if name, err = c.io.ReadInput("Username: "); err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
			}
			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			draft = draft.WithMail(mail).WithName(name).WithPassword(password)

			check := draft.Check()
			if !check.Submittable() {
				printCheck(c, check)
				return check.Err()
			}

			// соль можно перегенерировать до сохранения
			for {
				c.io.Printf("Salt: %s\n", draft.Salt)
				answer, err := c.io.ReadInput("Save account? [y]es / [r]egenerate salt / [n]o: ")
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}

				a := strings.ToLower(strings.TrimSpace(answer))
				if a == "r" || a == "regenerate" {
					if draft, err = draft.RegenerateSalt(); err != nil {
						return fmt.Errorf("failed to generate salt: %w", err)
					}
					continue
				}
				if a != "y" && a != "yes" {
					c.io.Println("Account creation cancelled.")
					return nil
				}
				break
			}

			result, err := c.service.Create(ctx, draft)
			if err != nil {
				return err
			}

			switch result.Status {
			case account.CreateCreated:
				c.io.Println()
				c.io.Println("✓ Account created.")
				printUser(c, result.User)
				return nil
			case account.CreateRejectedDuplicateName:
				c.io.Println("This username is already taken.")
				return fmt.Errorf("%w: %s", storage.ErrDuplicateName, draft.Name)
			default:
				printCheck(c, result.Check)
				return result.Check.Err()
			}
		},
	}

	cmd.Flags().StringVar(&mail, "mail", "", "e-mail of the new account")
	cmd.Flags().StringVar(&name, "name", "", "username of the new account")

	return cmd
}

// printCheck prints one line per failing field
func printCheck(c *Cli, check account.CreateCheck) {
	for _, err := range []error{check.Mail.Err(), check.Name.Err(), check.Password.Err()} {
		if err != nil {
			c.io.Printf("  ✗ %v\n", err)
		}
	}
}

func printUser(c *Cli, u *models.User) {
	c.io.Printf("  Username: %s\n", u.Name)
	c.io.Printf("  E-mail:   %s\n", u.Mail)
	c.io.Printf("  UUID:     %s\n", u.ID)
	c.io.Printf("  Salt:     %s\n", u.Salt)
	c.io.Printf("  Hash:     %s\n", u.Hash)
}
