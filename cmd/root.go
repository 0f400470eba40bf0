package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lifeline",
		Short:         "Lifeline: personal emergency assistant for the terminal",
		Long:          "lifeline keeps a medical profile and emergency contacts on the device, walks an emergency through detection, confirmation, response, and follow-up, and notifies contacts with your location over SMS.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTriggerCmd(app),
		newConfirmCmd(app),
		newFollowUpCmd(app),
		newResolveCmd(app),
		newCancelCmd(app),
		newStatusCmd(app),
		newAuditCmd(app),
		newProfileCmd(app),
	)

	return rootCmd
}
