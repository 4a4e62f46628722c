package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
)

var checkoutPreview bool

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Compose the order message, print the hand-off link and clear the local cart",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			store := a.LocalCart(ctx)
			out := c.OutOrStdout()
			if checkoutPreview {
				res, err := a.Checkout.Preview(store.Snapshot())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Message)
				fmt.Fprintln(out, res.URL)
				return nil
			}
			res, err := a.Checkout.Checkout(ctx, store)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res.Message)
			return nil
		})
	},
}

func init() {
	checkoutCmd.Flags().BoolVar(&checkoutPreview, "preview", false, "Print the message and link without clearing the cart")
	rootCmd.AddCommand(checkoutCmd)
}
