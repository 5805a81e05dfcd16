package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanity-io/pathdoc"
)

const (
	stringFlagName = "string"
	leafFlagName   = "leaf"
)

// setCmd represents the set command.
var setCmd = newSetCmd()

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set FILE PATH VALUE",
		Short: "Assign a value at a path",
		Long: `Assign VALUE, given as JSON, at PATH. The parent of the last segment must
exist: new object fields are added, but arrays never grow.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			asString, err := cmd.Flags().GetBool(stringFlagName)
			if err != nil {
				return err
			}

			var value interface{} = args[2]
			if !asString {
				value, err = pathdoc.ParseValue([]byte(args[2]))
				if err != nil {
					return fmt.Errorf("value: %w", err)
				}
			}

			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			if err := doc.Set(args[1], value); err != nil {
				return err
			}

			return emit(cmd, args[0], doc)
		},
	}

	cmd.Flags().BoolP(stringFlagName, "s", false, "treat VALUE as a plain string instead of JSON")
	addWriteFlag(cmd)

	return cmd
}

// ensureCmd represents the ensure command.
var ensureCmd = newEnsureCmd()

func newEnsureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure FILE PATH",
		Short: "Create the containers along a path",
		Long: `Create every missing object and array along PATH. Missing array elements
can only be appended, so their index must equal the length of the array.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			leafName, err := cmd.Flags().GetString(leafFlagName)
			if err != nil {
				return err
			}
			leaf, err := parseLeafKind(leafName)
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			if err := doc.EnsurePath(args[1], leaf); err != nil {
				return err
			}

			return emit(cmd, args[0], doc)
		},
	}

	cmd.Flags().String(leafFlagName, pathdoc.KindObject.String(), "kind of the last container: object or array")
	addWriteFlag(cmd)

	return cmd
}

func parseLeafKind(name string) (pathdoc.Kind, error) {
	switch name {
	case pathdoc.KindObject.String():
		return pathdoc.KindObject, nil
	case pathdoc.KindArray.String():
		return pathdoc.KindArray, nil
	}
	return pathdoc.KindInvalid, fmt.Errorf("unknown leaf kind %q (want object or array)", name)
}

// deleteCmd represents the delete command.
var deleteCmd = newDeleteCmd()

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete FILE PATH",
		Short: "Remove an object field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			if err := doc.Delete(args[1]); err != nil {
				return err
			}

			return emit(cmd, args[0], doc)
		},
	}

	addWriteFlag(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(deleteCmd)
}
