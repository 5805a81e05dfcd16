package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/diff"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "List the paths where two records differ",
		Long:  "Print a table of the fields added, removed or changed between LEFT and RIGHT. Nothing is printed when they are equal.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			right, err := readDocument(cmd, args[1])
			if err != nil {
				return err
			}

			changes := diff.Documents(left, right)
			if len(changes) == 0 {
				return nil
			}

			table, err := renderDiffTable(changes)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func renderDiffTable(changes []diff.Change) (string, error) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Op", "Path", "Old", "New"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, change := range changes {
		oldValue, err := cellValue(change.Op != diff.OpAdded, change.Old)
		if err != nil {
			return "", err
		}
		newValue, err := cellValue(change.Op != diff.OpRemoved, change.New)
		if err != nil {
			return "", err
		}

		name := change.Path.String()
		if len(change.Path) == 0 {
			name = rootPathLabel
		}

		table.Append([]string{change.Op.String(), name, oldValue, newValue})
	}

	table.Render()

	return tableBuffer.String(), nil
}

// cellValue renders a value as compact JSON, or an empty cell when the
// value is absent.
func cellValue(present bool, value interface{}) (string, error) {
	if !present {
		return "", nil
	}
	data, err := pathdoc.MarshalValue(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
