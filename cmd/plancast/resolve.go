package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve date and time expressions",
	}

	dateCmd := &cobra.Command{
		Use:   "date [text]",
		Short: "Resolve a date expression to YYYY-MM-DD",
		Example: `  plancast resolve date next monday
  plancast resolve date "March 5, 2027"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			date, ok := a.resolver().ResolveDate(cmd.Context(), text)
			if !ok {
				return fmt.Errorf("could not resolve a date from %q", text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), date)
			return nil
		},
	}

	timeCmd := &cobra.Command{
		Use:     "time [text]",
		Short:   "Resolve a time of day to HH:MM",
		Example: `  plancast resolve time 2:30pm`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			clock, ok := a.resolver().ResolveTime(text)
			if !ok {
				return fmt.Errorf("could not resolve a time from %q", text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), clock)
			return nil
		},
	}

	componentsCmd := &cobra.Command{
		Use:     "components [text]",
		Short:   "Extract date, time and timezone hint as JSON",
		Example: `  plancast resolve components tomorrow 3pm PST`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components := a.resolver().ExtractComponents(strings.Join(args, " "))
			out, err := json.MarshalIndent(components, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode components: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.AddCommand(dateCmd, timeCmd, componentsCmd)
	return cmd
}
