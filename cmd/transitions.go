package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avomont/lifeline/internal/application"
)

func newTriggerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Start an emergency and wait for confirmation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.emergency.Trigger(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Emergency triggered. Session %s.\n", session.ID)
			fmt.Fprintln(out, "Run 'lifeline confirm' to notify your contacts, or 'lifeline cancel' if this was accidental.")
			return nil
		},
	}
}

func newConfirmCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the emergency, fetch location, and notify contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result application.ConfirmResult
			err := runConfirmSpinner(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context) error {
				var confirmErr error
				result, confirmErr = app.emergency.Confirm(ctx)
				return confirmErr
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Announcement)
			if len(result.ContactsNotified) > 0 {
				fmt.Fprintln(out, "Notified: "+strings.Join(result.ContactsNotified, ", "))
			} else {
				fmt.Fprintln(out, "No contacts could be notified.")
			}
			if result.Session.Location != nil {
				fmt.Fprintln(out, "Location: "+result.Session.Location.MapsURL())
			}
			return nil
		},
	}
}

func newFollowUpCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "followup",
		Short: "Move the emergency into follow-up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.emergency.FollowUp(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session %s is in follow-up. Run 'lifeline resolve' once everyone is safe.\n", session.ID)
			return nil
		},
	}
}

func newResolveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Mark the emergency as resolved",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.emergency.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session %s resolved. Stay safe.\n", session.ID)
			return nil
		},
	}
}

func newCancelCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the emergency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.emergency.Cancel(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session %s cancelled.\n", session.ID)
			return nil
		},
	}
}
