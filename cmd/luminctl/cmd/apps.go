package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(api clientFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show desktop health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := api().Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", health.Status, api().BaseURL())
			return nil
		},
	}
}

func newAppsCmd(api clientFunc) *cobra.Command {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "List and launch dock apps",
	}

	appsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List dock apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := api().Apps(cmd.Context())
			if err != nil {
				return err
			}
			for _, app := range apps {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s %s\n", app.ID, app.Icon, app.Name)
			}
			return nil
		},
	})

	appsCmd.AddCommand(&cobra.Command{
		Use:   "launch <app-id>",
		Short: "Open a window for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, err := api().Launch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), windowID)
			return nil
		},
	})

	return appsCmd
}
