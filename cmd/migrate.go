package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
	"mixtape.GO/migrations"
)

var (
	migrateSteps int
	migrateDown  bool
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply (or roll back with --down) the database schema",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			var err error
			if migrateDown {
				err = migrations.Down(a.DB, migrateSteps)
			} else {
				err = migrations.Up(a.DB, migrateSteps)
			}
			if err != nil {
				return err
			}
			v, dirty, err := migrations.Version(a.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Schema up to date (version %d, dirty=%v, driver=%s)\n", v, dirty, a.DB.Dialector.Name())
			return nil
		})
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Number of migrations to apply or roll back (0 = all up, 1 down)")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back instead of applying")
	rootCmd.AddCommand(migrateCmd)
}
