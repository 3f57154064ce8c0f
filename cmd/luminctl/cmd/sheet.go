package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LuminOS/backend/internal/domain/sheet"
)

func newSheetCmd(api clientFunc) *cobra.Command {
	sheetCmd := &cobra.Command{
		Use:   "sheet",
		Short: "Read and edit the spreadsheet",
	}

	sheetCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the grid of display values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := api().Sheet(cmd.Context())
			if err != nil {
				return err
			}
			printGrid(cmd.OutOrStdout(), snap)
			return nil
		},
	})

	sheetCmd.AddCommand(&cobra.Command{
		Use:   "set <cell> <raw>",
		Short: "Write a value or =formula into a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.ToUpper(args[0])
			snap, err := api().SetCell(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", id, snap.Values[id])
			return nil
		},
	})

	sheetCmd.AddCommand(&cobra.Command{
		Use:   "summary <column>",
		Short: "Statistics over the numbers in a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := api().ColumnSummary(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d sum=%g mean=%g min=%g max=%g stddev=%g\n",
				sum.Count, sum.Sum, sum.Mean, sum.Min, sum.Max, sum.StdDev)
			return nil
		},
	})

	return sheetCmd
}

// printGrid prints the rows that hold at least one value.
func printGrid(w io.Writer, snap sheet.Snapshot) {
	fmt.Fprintf(w, "%4s", "")
	for i := 0; i < len(sheet.Columns); i++ {
		fmt.Fprintf(w, " %-10c", sheet.Columns[i])
	}
	fmt.Fprintln(w)

	for row := 1; row <= sheet.Rows; row++ {
		var line strings.Builder
		filled := false
		fmt.Fprintf(&line, "%4d", row)
		for i := 0; i < len(sheet.Columns); i++ {
			v := snap.Values[sheet.CellID(sheet.Columns[i], row)]
			if v != "" {
				filled = true
			}
			fmt.Fprintf(&line, " %-10s", v)
		}
		if filled {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
		}
	}
}
