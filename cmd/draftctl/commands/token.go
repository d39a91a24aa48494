// cmd/draftctl/commands/token.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/draft-backend/internal/utils"
)

var (
	tokenUser string
	tokenTTL  int
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to embed in the token")
	tokenCmd.Flags().IntVar(&tokenTTL, "ttl", 0, "token lifetime in hours (defaults to JWT_ACCESS_TTL)")
	tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issues a bearer token for local testing against the HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWT.AccessTokenTTL
		}

		utils.SetJWTSecret(cfg.JWT.SecretKey)
		token, err := utils.GenerateJWT(tokenUser, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
