package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omriShneor/plancast/internal/config"
	"github.com/omriShneor/plancast/internal/timeutil"
)

var errGoogleOnly = errors.New("this command needs the google calendar backend (PLANCAST_CALENDAR_BACKEND=google)")

func newCalendarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List, create and check calendar events",
	}

	listCmd := &cobra.Command{
		Use:   "list [date]",
		Short: "List events for a date, or upcoming events",
		Example: `  plancast calendar list
  plancast calendar list next friday`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "get_calendar_events", map[string]any{
				"date": strings.Join(args, " "),
			})
		},
	}

	var (
		title          string
		date           string
		at             string
		location       string
		description    string
		attendees      []string
		duration       int
		allowDuplicate bool
	)
	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an event",
		Example: `  plancast calendar create --title "Team Meeting" --date tomorrow --time 3pm --attendee jane@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "create_calendar_event", map[string]any{
				"title":            title,
				"date":             date,
				"time":             at,
				"location":         location,
				"description":      description,
				"attendees":        attendees,
				"duration_minutes": duration,
				"allow_duplicate":  allowDuplicate,
			})
		},
	}
	createCmd.Flags().StringVar(&title, "title", "", "Event title")
	createCmd.Flags().StringVar(&date, "date", "", "Event date, e.g. 'next monday'")
	createCmd.Flags().StringVar(&at, "time", "", "Start time, e.g. '3pm PST'")
	createCmd.Flags().StringVar(&location, "location", "", "Event location")
	createCmd.Flags().StringVar(&description, "description", "", "Event description")
	createCmd.Flags().StringSliceVar(&attendees, "attendee", nil, "Attendee e-mail (repeatable)")
	createCmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default 60)")
	createCmd.Flags().BoolVar(&allowDuplicate, "allow-duplicate", false, "Create even if the same event already exists")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("date")

	var slot string
	checkCmd := &cobra.Command{
		Use:   "check [date]",
		Short: "Check availability for a day or a one-hour slot",
		Example: `  plancast calendar check tomorrow
  plancast calendar check friday --at 2pm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolWith(cmd, a, "check_calendar_availability", map[string]any{
				"date":      strings.Join(args, " "),
				"time_slot": slot,
			})
		},
	}
	checkCmd.Flags().StringVar(&slot, "at", "", "Start of the one-hour slot to check")

	calendarsCmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the Google calendars the account can access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.CalendarBackend == config.CalendarICS {
				return errGoogleOnly
			}
			client, err := a.googleClient()
			if err != nil {
				return err
			}
			calendars, err := client.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range calendars {
				marker := " "
				if c.Primary {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n", marker, c.Summary, c.ID, c.AccessRole)
			}
			return nil
		},
	}

	var limit int
	createdCmd := &cobra.Command{
		Use:   "created",
		Short: "List events created through plancast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.ledger()
			if err != nil {
				return err
			}
			events, err := db.ListCreatedEvents(limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events created yet.")
				return nil
			}

			loc, _ := timeutil.ResolveLocation(a.cfg.EventTimezone)
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s at %s [%s %s]\n",
					e.Title, e.Start.In(loc).Format(time.RFC3339), e.Backend, e.EventID)
			}
			return nil
		},
	}
	createdCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show")

	cmd.AddCommand(listCmd, createCmd, checkCmd, calendarsCmd, createdCmd)
	return cmd
}
