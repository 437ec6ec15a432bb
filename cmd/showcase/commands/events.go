package commands

import (
	"github.com/spf13/cobra"

	"github.com/eeese/showcase/internal/domain"
)

func (c *CLI) newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event", "e"},
		Short:   "Read the event catalog",
	}

	cmd.AddCommand(c.newEventsListCmd())
	cmd.AddCommand(c.newEventsGetCmd())
	return cmd
}

func (c *CLI) newEventsListCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
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

			events, err := a.events.GetEvents(cmd.Context(), force)
			if err != nil {
				return err
			}
			return c.printEvents(events)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the cache and race both sources")
	return cmd
}

func (c *CLI) newEventsGetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkOutput(); err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.events.GetEvent(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return c.printEvents([]domain.Event{e})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the cache and race both sources")
	return cmd
}
