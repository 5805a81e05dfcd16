package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sanity-io/pathdoc"
)

const rootPathLabel = "(root)"

// pathsCmd represents the paths command.
var pathsCmd = newPathsCmd()

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths FILE",
		Short: "List the leaf paths of a record",
		Long:  "Print a table of every scalar, empty array and empty object in the record with its path.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			table, err := renderPathsTable(doc)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func renderPathsTable(doc *pathdoc.Document) (string, error) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Kind", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	count := 0
	err := doc.Walk(func(p pathdoc.Path, value interface{}) error {
		data, err := pathdoc.MarshalValue(value)
		if err != nil {
			return err
		}

		name := p.String()
		if len(p) == 0 {
			name = rootPathLabel
		}

		table.Append([]string{name, pathdoc.KindOf(value).String(), string(data)})
		count++
		return nil
	})
	if err != nil {
		return "", err
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", count), "", ""})
	table.Render()

	return tableBuffer.String(), nil
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
