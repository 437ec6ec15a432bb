package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local store from the remote source once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.checkOutput(); err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.newSyncer().SyncNow(cmd.Context())
			if err != nil {
				return err
			}

			if c.output == outputJSON {
				return writeJSON(c.out, map[string]any{
					"projects":    res.Projects,
					"events":      res.Events,
					"duration_ms": res.Duration.Milliseconds(),
				})
			}
			fmt.Fprintf(c.out, "synced %d projects and %d events in %s\n", res.Projects, res.Events, res.Duration)
			return nil
		},
	}
}
