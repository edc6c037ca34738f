package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriShneor/plancast/internal/config"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar",
		Long: `Authorize access to Google Calendar.

Open the URL printed by "plancast auth url", approve access, then pass the
code from the redirect to "plancast auth exchange". The token is saved to
GOOGLE_TOKEN_FILE.`,
	}

	urlCmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.CalendarBackend == config.CalendarICS {
				return errGoogleOnly
			}
			client, err := a.googleClient()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.GetAuthURL())
			return nil
		},
	}

	exchangeCmd := &cobra.Command{
		Use:   "exchange [code]",
		Short: "Exchange an authorization code for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.CalendarBackend == config.CalendarICS {
				return errGoogleOnly
			}
			client, err := a.googleClient()
			if err != nil {
				return err
			}
			if err := client.ExchangeCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Google Calendar authorized, token saved to %s\n", a.cfg.GoogleTokenFile)
			return nil
		},
	}

	cmd.AddCommand(urlCmd, exchangeCmd)
	return cmd
}
