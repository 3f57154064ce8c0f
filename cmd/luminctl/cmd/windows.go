package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var windowActions = []struct {
	name  string
	short string
}{
	{"close", "Close a window"},
	{"focus", "Bring a window to the front"},
	{"minimize", "Minimize a window"},
	{"restore", "Restore a minimized window"},
	{"maximize", "Toggle the maximized state of a window"},
}

func newWindowsCmd(api clientFunc) *cobra.Command {
	windowsCmd := &cobra.Command{
		Use:   "windows",
		Short: "List and arrange windows",
	}

	windowsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List windows bottom-most first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := api().Windows(cmd.Context())
			if err != nil {
				return err
			}
			if len(windows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No windows open")
				return nil
			}
			for _, w := range windows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s z=%-4d %-9s %s\n", w.ID, w.Z, w.State, w.Title)
			}
			return nil
		},
	})

	for _, action := range windowActions {
		action := action
		windowsCmd.AddCommand(&cobra.Command{
			Use:   action.name + " <window-id>",
			Short: action.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := api().WindowAction(cmd.Context(), args[0], action.name)
				if err != nil {
					return err
				}
				if !res.Success {
					return fmt.Errorf("%s: no change to %s", action.name, args[0])
				}
				if res.Window != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", res.ID, res.Window.State)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.ID)
				return nil
			},
		})
	}

	return windowsCmd
}
