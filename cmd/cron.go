package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
	"mixtape.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			builtins := cron.Builtins(a.Catalog, a.Log)
			if jobName != "" {
				fmt.Fprintf(c.OutOrStdout(), "Running cron job: %s\n", jobName)
				return cron.RunOnce(ctx, a.Log, builtins, jobName, args...)
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			sched, err := cron.StartCron(ctx, a.Log, builtins)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")
			<-ctx.Done()
			<-sched.Stop().Done()
			return nil
		})
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
