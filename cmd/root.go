package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
)

var rootCmd = &cobra.Command{
	Use:           "mixtape",
	Short:         "Mixtape Era storefront tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// bootstrap builds the shared services. Tests swap it for an in-memory app.
var bootstrap = func(ctx context.Context, out io.Writer) (*app.App, error) {
	return app.New(ctx, app.Options{Out: out})
}

// withApp runs fn against a freshly bootstrapped app and closes it afterwards.
func withApp(c *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(ctx, c.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// Execute applies registered extension commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
