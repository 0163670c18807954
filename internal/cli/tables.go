package cli

import (
	"github.com/spf13/cobra"
)

func newTablesCmd(sf *storeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage the table catalog",
	}
	cmd.AddCommand(newTablesAddCmd(sf), newTablesListCmd(sf))
	return cmd
}

func newTablesAddCmd(sf *storeFlags) *cobra.Command {
	var min, max int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a table with an inclusive guest range",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd, sf)
			if err != nil {
				return err
			}
			defer store.Close()

			t, err := store.AddTable(cmd.Context(), min, max)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().IntVar(&min, "min", 0, "fewest guests the table seats")
	cmd.Flags().IntVar(&max, "max", 0, "most guests the table seats")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func newTablesListCmd(sf *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every table in id order",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd, sf)
			if err != nil {
				return err
			}
			defer store.Close()

			tables, err := store.ListTables(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tables)
		},
	}
}
