package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
	"mixtape.GO/core/price"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
)

var cartVariant string

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Print the local cart",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			printCart(c.OutOrStdout(), a.LocalCart(ctx))
			return nil
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "cart:add <product-id>",
	Short: "Add one unit of a product (and variant) to the local cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			p, err := a.Catalog.GetProductByRef(ctx, args[0])
			if err != nil {
				return err
			}
			sel, err := catalog.Select(p, cartVariant)
			if err != nil {
				return err
			}
			store := a.LocalCart(ctx)
			if err := store.AddItem(ctx, sel.Item()); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Added %s (%s) at %s\n", sel.Title, sel.Variant, price.Format(sel.UnitPrice))
			printCart(c.OutOrStdout(), store)
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove <product-id>",
	Short: "Remove a line from the local cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return withApp(c, func(ctx context.Context, a *app.App) error {
			store := a.LocalCart(ctx)
			if err := store.RemoveItem(ctx, id, cartVariant); err != nil {
				return err
			}
			printCart(c.OutOrStdout(), store)
			return nil
		})
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "cart:qty <product-id> <quantity>",
	Short: "Set the quantity of a line; zero or less removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return withApp(c, func(ctx context.Context, a *app.App) error {
			store := a.LocalCart(ctx)
			if err := store.UpdateQuantity(ctx, id, cartVariant, qty); err != nil {
				return err
			}
			printCart(c.OutOrStdout(), store)
			return nil
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the local cart",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			if err := a.LocalCart(ctx).Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Cart cleared.")
			return nil
		})
	},
}

func parseProductID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return uint(id), nil
}

func printCart(w io.Writer, store *cart.Store) {
	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}
	for _, e := range entries {
		label := e.Title
		if e.HasVariant() {
			label = fmt.Sprintf("[%s] %s", e.Variant, e.Title)
		}
		fmt.Fprintf(w, "%4d  %3d x %-40s %10s\n", e.ProductID, e.Quantity, label, price.Format(e.UnitPrice))
	}
	fmt.Fprintf(w, "Items: %d  Subtotal: %s\n", store.TotalItemCount(), price.Format(store.Subtotal()))
}

func init() {
	for _, c := range []*cobra.Command{cartAddCmd, cartRemoveCmd, cartQtyCmd} {
		c.Flags().StringVarP(&cartVariant, "variant", "v", "", "Variant name (empty or Standard for none)")
	}
	rootCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartQtyCmd, cartClearCmd)
}
