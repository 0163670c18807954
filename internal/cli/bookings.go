package cli

import (
	"github.com/spf13/cobra"
)

func newBookingsCmd(sf *storeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage the booking ledger",
	}
	cmd.AddCommand(newBookingsAddCmd(sf))
	return cmd
}

func newBookingsAddCmd(sf *storeFlags) *cobra.Command {
	var (
		tableID  int64
		date, tm string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a table for one slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd, sf)
			if err != nil {
				return err
			}
			defer store.Close()

			b, err := store.AddBooking(cmd.Context(), tableID, date, tm)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&tableID, "table", 0, "table id")
	f.StringVar(&date, "date", "", "date, YYYY-MM-DD")
	f.StringVar(&tm, "time", "", "time, HH:MM or HH:MM:SS")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}
