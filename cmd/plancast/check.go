package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("one or more checks failed")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the language model, calendar, weather and database connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			failed := false

			report := func(name string, err error) {
				if err != nil {
					failed = true
					fmt.Fprintf(out, "❌ %s: %v\n", name, err)
					return
				}
				fmt.Fprintf(out, "✅ %s\n", name)
			}

			model, err := a.modelClient()
			switch {
			case err != nil:
				report("language model", err)
			case model == nil:
				skipped(out, "language model", "provider is none")
			default:
				report("language model ("+model.Name()+")", model.Ping(ctx))
			}

			backend, err := a.calendarBackend()
			if err != nil {
				report("calendar", err)
			} else {
				report("calendar ("+backend.Name()+")", backend.Ping(ctx))
			}

			svc, err := a.weatherService()
			if err != nil {
				report("weather", err)
			} else {
				_, err := svc.Current(ctx, a.cfg.DefaultLocation)
				report("weather", err)
			}

			db, err := a.ledger()
			if err != nil {
				report("database", err)
			} else {
				report("database", db.PingContext(ctx))
			}

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}

func skipped(out io.Writer, name, reason string) {
	fmt.Fprintf(out, "➖ %s: skipped (%s)\n", name, reason)
}
