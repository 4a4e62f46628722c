package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mixtape.GO/core/app"
	"mixtape.GO/model/entity"
	authRepo "mixtape.GO/model/repository/auth"
)

var (
	tokenName string
	tokenTTL  time.Duration
)

var tokenCreateCmd = &cobra.Command{
	Use:   "admin:token:create",
	Short: "Issue a bearer token for the admin catalog API (AUTH_TYPE=token)",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			t := &entity.AdminToken{
				Name:  tokenName,
				Token: strings.ReplaceAll(uuid.NewString(), "-", ""),
			}
			if tokenTTL > 0 {
				exp := time.Now().Add(tokenTTL)
				t.ExpiresAt = &exp
			}
			if err := authRepo.NewAuthRepository(a.DB).CreateToken(t); err != nil {
				return fmt.Errorf("create token: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), t.Token)
			return nil
		})
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "admin:token:revoke <token>",
	Short: "Revoke an admin bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return withApp(c, func(ctx context.Context, a *app.App) error {
			if err := authRepo.NewAuthRepository(a.DB).Revoke(args[0]); err != nil {
				return fmt.Errorf("revoke token: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "Token revoked.")
			return nil
		})
	},
}

func init() {
	tokenCreateCmd.Flags().StringVar(&tokenName, "name", "admin", "Label stored with the token")
	tokenCreateCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (0 = no expiry)")
	rootCmd.AddCommand(tokenCreateCmd, tokenRevokeCmd)
}
