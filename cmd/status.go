package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	incidentadapter "github.com/avomont/lifeline/internal/adapters/render/incident"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var auditTail int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current emergency, profile, and recent activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := app.status.Run(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(overview)
			}

			rendered, err := app.overviewRenderer(overview, incidentadapter.RenderOptions{
				Now:       app.now(),
				AuditTail: auditTail,
			})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output machine-readable JSON")
	cmd.Flags().IntVar(&auditTail, "audit-tail", 0, "Number of recent activity entries to show")

	return cmd
}
