package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tablefinder/internal/config"
	"tablefinder/internal/domain"
	applog "tablefinder/internal/log"
	"tablefinder/internal/repos"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// storeFlags override the DB_* environment for any command that opens the store.
type storeFlags struct {
	driver string
	dsn    string
	seed   bool
}

func NewRootCmd() *cobra.Command {
	sf := &storeFlags{}

	root := &cobra.Command{
		Use:           "tablefinder",
		Short:         "Restaurant table availability search service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// keep stdout for command output; serve re-inits logging itself
			l, err := applog.New(cmd.ErrOrStderr(), "warn")
			if err != nil {
				return err
			}
			applog.SetLogger(l)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&sf.driver, "driver", "", "storage driver: sqlite, postgres, mysql or memory (env DB_DRIVER)")
	pf.StringVar(&sf.dsn, "dsn", "", "data source name (env DB_DSN or DATABASE_URL)")
	pf.BoolVar(&sf.seed, "seed", true, "seed demo tables into an empty catalog (env DB_SEED)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(sf))
	root.AddCommand(newSearchCmd(sf))
	root.AddCommand(newTablesCmd(sf))
	root.AddCommand(newBookingsCmd(sf))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if domain.IsValidation(err) {
			fmt.Fprintln(os.Stderr, "invalid input:", err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies any store flags the user set.
func loadConfig(cmd *cobra.Command, sf *storeFlags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.DBDriver = sf.driver
	}
	if flags.Changed("dsn") {
		cfg.DBDSN = sf.dsn
	}
	if flags.Changed("seed") {
		cfg.DBSeed = sf.seed
	}
	return cfg, nil
}

func openStore(cmd *cobra.Command, sf *storeFlags) (config.Config, repos.Backend, error) {
	cfg, err := loadConfig(cmd, sf)
	if err != nil {
		return cfg, nil, err
	}
	store, err := repos.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBSeed)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}
