package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *Cli) listCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts with their hash and salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.service.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(users, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode users: %w", err)
				}
				c.io.Println(string(data))
				return nil
			}

			count, err := c.service.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count users: %w", err)
			}

			c.io.Println("=== Accounts ===")
			c.io.Printf("User count: %d\n", count)
			if len(users) == 0 {
				c.io.Println("No users found.")
				c.io.Println("Use 'accountkeeper create' to add the first account.")
				return nil
			}
			c.io.Println()

			var sb strings.Builder
			tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "USERNAME\tE-MAIL\tUUID\tSALT\tHASH (SHA-512)")
			for _, u := range users {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.Name, u.Mail, u.ID, u.Salt, u.Hash)
			}
			if err := tw.Flush(); err != nil {
				return fmt.Errorf("failed to format users: %w", err)
			}
			c.io.Printf("%s", sb.String())

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print accounts as JSON")

	return cmd
}
