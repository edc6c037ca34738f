package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newWeatherCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Current weather, forecasts and event-day weather",
	}

	currentCmd := &cobra.Command{
		Use:     "current [location]",
		Short:   "Show current conditions",
		Example: `  plancast weather current London`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "get_current_weather", map[string]any{
				"location": strings.Join(args, " "),
			})
		},
	}

	var forecastDate string
	forecastCmd := &cobra.Command{
		Use:     "forecast [location]",
		Short:   "Show the forecast for a date within the next three days",
		Example: `  plancast weather forecast Paris --date tomorrow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "get_weather_forecast", map[string]any{
				"location": strings.Join(args, " "),
				"date":     forecastDate,
			})
		},
	}
	forecastCmd.Flags().StringVar(&forecastDate, "date", "", "Forecast date")

	var eventLocation string
	eventCmd := &cobra.Command{
		Use:     "event [date]",
		Short:   "Check the weather for an event day",
		Example: `  plancast weather event saturday --location "San Francisco"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "check_weather_for_event", map[string]any{
				"date":     strings.Join(args, " "),
				"location": eventLocation,
			})
		},
	}
	eventCmd.Flags().StringVar(&eventLocation, "location", "", "Event location")

	cmd.AddCommand(currentCmd, forecastCmd, eventCmd)
	return cmd
}
