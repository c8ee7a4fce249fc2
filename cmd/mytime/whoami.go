package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mytime/console/internal/pkg/token"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in operator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		ctx := cmd.Context()
		user := a.Account.CurrentUser(ctx)
		if !a.Account.IsAuthenticated(ctx) || user == nil {
			return errors.New("not logged in")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "User:      %s\n", displayName(user))
		fmt.Fprintf(out, "ID:        %s\n", user.ID)
		fmt.Fprintf(out, "Role:      %s\n", a.Account.UserRoleName(ctx))
		fmt.Fprintf(out, "Dashboard: %s\n", a.Account.DefaultDashboard(ctx))

		info, err := token.Inspect(a.Account.AccessToken(ctx))
		if err != nil {
			fmt.Fprintln(out, "Token:     opaque")
			return nil
		}
		if !info.ExpiresAt.IsZero() {
			state := "valid"
			if info.Expired(a.Clock.Now()) {
				state = "expired"
			}
			fmt.Fprintf(out, "Expires:   %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
