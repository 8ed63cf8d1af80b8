package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) storesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List and switch stores",
	}
	cmd.AddCommand(a.storesListCmd())
	cmd.AddCommand(a.storesSwitchCmd())
	return cmd
}

func (a *App) storesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stores you can work in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			stores, err := a.client.ListStores(cmd.Context())
			if err != nil {
				a.notify.Error(messageOf(err, "Could not load stores"))
				return reported(err)
			}
			if len(stores) == 0 {
				a.println("No stores.")
				return nil
			}

			current, _ := a.client.Session().CurrentStore()
			a.outMu.Lock()
			defer a.outMu.Unlock()
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tCITY")
			for _, s := range stores {
				mark := ""
				if s.ID == current.ID {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, s.ID, s.Name, s.City)
			}
			return tw.Flush()
		},
	}
}

func (a *App) storesSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <store-id>",
		Short: "Make another store current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			store, err := a.client.SwitchStore(cmd.Context(), args[0])
			if err != nil {
				a.notify.Error(messageOf(err, "Could not switch store"))
				return reported(err)
			}
			a.notify.Success(fmt.Sprintf("Switched to %s", store.Name))
			return nil
		},
	}
}
