package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuditCmd(app *app) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show or clear the activity log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if clear {
				if err := app.audit.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Activity log cleared.")
				return nil
			}

			entries, err := app.audit.Entries(cmd.Context())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}

			for _, entry := range entries {
				line := fmt.Sprintf("%s  %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Action)
				if entry.Details != "" {
					line += "  " + entry.Details
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Delete the activity log")

	return cmd
}
