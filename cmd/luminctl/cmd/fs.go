package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LuminOS/backend/internal/shared/types"
)

func newFSCmd(api clientFunc) *cobra.Command {
	fsCmd := &cobra.Command{
		Use:   "fs",
		Short: "Manage files in the virtual file system",
		Long: `Manage files in the desktop's virtual file system.

Examples:
  luminctl fs ls /documents
  luminctl fs write /documents/todo.txt "buy milk"
  luminctl fs cat /documents/todo.txt
  luminctl fs find "**/*.md"
  luminctl fs rm -r /documents/old`,
	}

	fsCmd.AddCommand(&cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "/"
			if len(args) == 1 {
				dir = args[0]
			}
			entries, err := api().ListFiles(cmd.Context(), dir)
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	})

	fsCmd.AddCommand(&cobra.Command{
		Use:   "cat <path>",
		Short: "Print a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := api().ReadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return fmt.Errorf("%s is a directory", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), entry.Text())
			return nil
		},
	})

	var mimeType string
	writeCmd := &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Create or replace a file",
		Long:  "Create or replace a file. Without a content argument the file body is read from stdin.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if len(args) == 2 {
				content = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				content = string(data)
			}
			entry, err := api().SaveFile(cmd.Context(), args[0], content, mimeType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes, %s)\n", entry.Path, entry.Size, entry.Type)
			return nil
		},
	}
	writeCmd.Flags().StringVarP(&mimeType, "type", "t", "", "MIME type (detected when empty)")
	fsCmd.AddCommand(writeCmd)

	fsCmd.AddCommand(&cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := api().Mkdir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Path)
			return nil
		},
	})

	var recursive bool
	rmCmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := api().Delete(cmd.Context(), args[0], recursive)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
			return nil
		},
	}
	rmCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "delete the whole subtree")
	fsCmd.AddCommand(rmCmd)

	fsCmd.AddCommand(&cobra.Command{
		Use:   "find <pattern>",
		Short: "Find paths matching a glob pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := api().Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Path)
			}
			return nil
		},
	})

	return fsCmd
}

func printEntries(w io.Writer, entries []*types.Entry) {
	for _, e := range entries {
		name := e.Name
		if e.IsDir() {
			name += "/"
		}
		fmt.Fprintf(w, "%8d  %-24s %s\n", e.Size, strings.TrimSpace(e.Type), name)
	}
}
