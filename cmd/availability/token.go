package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
)

// newTokenCmd mints a bearer token for a staff member. Staff accounts live
// outside this service, so this is how operators and tests get one.
func newTokenCmd() *cobra.Command {
	v := viper.New()
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a staff JWT for a tenant (secret from --secret or JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := v.GetString("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is required")
			}
			tenant := v.GetInt64("tenant")
			if tenant <= 0 {
				return errors.New("--tenant must be positive")
			}
			staff := v.GetString("staff")
			if staff == "" {
				return errors.New("--staff is required")
			}

			token, err := auth.NewJWTManager(secret, v.GetDuration("JWT_TTL")).GenerateAccessToken(staff, tenant)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64("tenant", 0, "tenant id carried in the token")
	cmd.Flags().String("staff", "", "staff id used as the token subject")
	cmd.Flags().String("secret", "", "HS256 signing secret")
	cmd.Flags().Duration("ttl", 12*time.Hour, "token lifetime")

	_ = v.BindPFlag("tenant", cmd.Flags().Lookup("tenant"))
	_ = v.BindPFlag("staff", cmd.Flags().Lookup("staff"))
	_ = v.BindPFlag("JWT_SECRET", cmd.Flags().Lookup("secret"))
	_ = v.BindPFlag("JWT_TTL", cmd.Flags().Lookup("ttl"))

	return cmd
}
