package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and users table if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// таблица уже создана при открытии хранилища
			count, err := c.service.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count users: %w", err)
			}

			c.io.Printf("Database ready: %s (%s)\n", c.dbPath, c.cfg.Storage.Driver)
			c.io.Printf("User count: %d\n", count)
			return nil
		},
	}
}
