package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command.
var getCmd = newGetCmd()

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at a path",
		Long:  "Print the value at PATH. The command fails when the path does not resolve.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			value, err := doc.Lookup(args[1])
			if err != nil {
				return err
			}

			return printValue(cmd, value)
		},
	}
}

// hasCmd represents the has command.
var hasCmd = newHasCmd()

func newHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has FILE PATH",
		Short: "Report whether a path exists",
		Long:  "Print true when every segment of PATH exists and false otherwise. A field holding null exists.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Has(args[1]))
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(hasCmd)
}
