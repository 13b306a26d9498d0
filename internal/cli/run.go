package cli

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Lzww0608/bsonuuid/migrate"
)

func newRunCmd() *cobra.Command {
	var (
		cfgFile string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "re-encode a MySQL UUID column as described by a YAML config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := migrate.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}

			m, err := migrate.New(cfg, log.Logger)
			if err != nil {
				return errors.Wrap(err, "invalid config")
			}
			defer m.Close()

			stats, err := m.Run(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Object("stats", stats).Msg("done")
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to the migration YAML config")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count rows without writing")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}
