package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
	"mixtape.GO/core/price"
	"mixtape.GO/service/catalog"
)

var (
	importFile   string
	importDryRun bool
	listQuery    string
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from CSV",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()

		return withApp(c, func(ctx context.Context, a *app.App) error {
			res, err := a.Catalog.ImportProducts(ctx, f, catalog.ImportOptions{DryRun: importDryRun})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			out := c.OutOrStdout()
			for _, w := range res.Warnings {
				fmt.Fprintf(out, "  [warn] %s\n", w)
			}
			fmt.Fprintf(out, `
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Mode:           %s
Total time:     %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
				map[bool]string{true: "dry run", false: "write"}[importDryRun],
				res.TotalTime.Round(time.Millisecond))
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "products:list",
	Short: "List products with their display price",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			products, err := a.Catalog.Search(ctx, listQuery)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			for i := range products {
				p := &products[i]
				badge := ""
				if b := p.Badge(); b != nil {
					badge = b.Text
				}
				fmt.Fprintf(out, "%4d  %-40s %10s  %2d variants  %s\n",
					p.ID, p.Title, price.Format(catalog.DisplayPrice(p)), len(p.Variants), badge)
			}
			fmt.Fprintf(out, "%d product(s)\n", len(products))
			return nil
		})
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	_ = importCmd.MarkFlagRequired("file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate rows without writing")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by title")
	rootCmd.AddCommand(importCmd, listCmd)
}
