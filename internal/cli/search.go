package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"tablefinder/internal/domain"
	"tablefinder/internal/repos"
	"tablefinder/internal/services"
	"tablefinder/internal/validate"
)

func newSearchCmd(sf *storeFlags) *cobra.Command {
	var date, tm, guests string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List tables free for a party at a date and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := validate.Guests(guests)
			if !ok {
				return domain.ValidationError{Field: "guests", Msg: "must be a whole number of at least 1"}
			}
			cfg, err := loadConfig(cmd, sf)
			if err != nil {
				return err
			}
			svc := services.NewAvailabilityService(nil, cfg.SlotMinutes)
			// reject bad input before a sqlite file gets created and seeded
			q, err := svc.Normalize(domain.AvailabilityQuery{Date: date, Time: tm, Guests: n})
			if err != nil {
				return err
			}

			store, err := repos.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBSeed)
			if err != nil {
				return err
			}
			defer store.Close()

			svc.Store = store
			tables, err := svc.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tables)
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "date, YYYY-MM-DD")
	f.StringVar(&tm, "time", "", "time, HH:MM or HH:MM:SS")
	f.StringVar(&guests, "guests", "", "party size")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("guests")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
