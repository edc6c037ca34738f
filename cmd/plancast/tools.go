package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List and run the assistant's calendar and weather tools",
	}

	var showSchema bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tool := range r.Tools() {
				fmt.Fprintf(out, "%s\n  %s\n", tool.Name, strings.ReplaceAll(tool.Description, "\n", " "))
				if showSchema {
					schema, err := json.MarshalIndent(tool.InputSchema, "  ", "  ")
					if err != nil {
						return fmt.Errorf("failed to encode schema for %s: %w", tool.Name, err)
					}
					fmt.Fprintf(out, "  %s\n", schema)
				}
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&showSchema, "schema", false, "Print each tool's input schema")

	runCmd := &cobra.Command{
		Use:   "run [tool] [json-input]",
		Short: "Run a tool with a JSON object as input",
		Example: `  plancast tools run get_calendar_events '{"date": "tomorrow"}'
  plancast tools run create_calendar_event '{"title": "Dentist", "date": "friday", "time": "3pm"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input []byte
			if len(args) == 2 {
				input = []byte(args[1])
			}
			return runTool(cmd, a, args[0], input)
		},
	}

	cmd.AddCommand(listCmd, runCmd)
	return cmd
}

// runTool executes a tool and prints its result.
func runTool(cmd *cobra.Command, a *app, name string, input []byte) error {
	r, err := a.registry()
	if err != nil {
		return err
	}
	if !r.HasTool(name) {
		return fmt.Errorf("tool %s is not available (known tools: %s)", name, strings.Join(r.Names(), ", "))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := r.ExecuteJSON(ctx, name, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

// runToolWith marshals input and runs the named tool.
func runToolWith(cmd *cobra.Command, a *app, name string, input map[string]any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	return runTool(cmd, a, name, raw)
}
