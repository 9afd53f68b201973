package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := c.service.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count users: %w", err)
			}
			c.io.Printf("%d\n", count)
			return nil
		},
	}
}
