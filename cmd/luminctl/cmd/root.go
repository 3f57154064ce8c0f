package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LuminOS/backend/internal/client"
)

// NewRootCmd builds the luminctl command tree.
func NewRootCmd() *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
		api       *client.Client
	)

	root := &cobra.Command{
		Use:   "luminctl",
		Short: "CLI for a running LuminOS desktop",
		Long: `luminctl drives a LuminOS desktop over its HTTP API.

It can launch apps, arrange windows, manage files in the virtual file
system and edit the spreadsheet.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg := client.DefaultConfig()
			cfg.BaseURL = serverURL
			cfg.Timeout = timeout
			api = client.New(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer(), "desktop address")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	get := func() *client.Client { return api }
	root.AddCommand(
		newHealthCmd(get),
		newAppsCmd(get),
		newWindowsCmd(get),
		newFSCmd(get),
		newSheetCmd(get),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultServer() string {
	if url := os.Getenv("LUMIN_URL"); url != "" {
		return url
	}
	return client.DefaultBaseURL
}

type clientFunc func() *client.Client
