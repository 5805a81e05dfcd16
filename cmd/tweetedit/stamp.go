package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sanity-io/pathdoc/internal/diff"
	"github.com/sanity-io/pathdoc/internal/digest"
	"github.com/sanity-io/pathdoc/internal/tweet"
)

// stampCmd represents the stamp command.
var stampCmd = newStampCmd()

func newStampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp FILE...",
		Short: "Add missing created_at and id fields to records",
		Long: `Add created_at and a matching id/id_str pair to every record that lacks them.
Files are processed in parallel and only rewritten when their content changed.`,
		Args:   cobra.MinimumNArgs(1),
		PreRun: bindOnRun(skipDateFlagName, skipDateConfigKey),
		RunE: func(cmd *cobra.Command, args []string) error {
			stamped, err := stampFiles(args, stampOptions{
				parallel: viper.GetInt(stampParallelConfig),
				skipDate: viper.GetBool(skipDateConfigKey),
				pretty:   viper.GetBool(outputPrettyKey),
			})
			if err != nil {
				return err
			}

			for i, name := range args {
				status := "unchanged"
				if stamped[i] {
					status = "stamped"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, status); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntP(parallelFlagName, "p", viper.GetInt(stampParallelConfig), "number of files processed at once")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), stampParallelConfig)
	cmd.Flags().Bool(skipDateFlagName, viper.GetBool(skipDateConfigKey), "do not add created_at")

	return cmd
}

type stampOptions struct {
	parallel int
	skipDate bool
	pretty   bool
}

// stampFiles stamps every file with its own document and ID generator and
// reports which files were rewritten.
func stampFiles(names []string, options stampOptions) ([]bool, error) {
	threads := options.parallel
	if threads < 1 {
		threads = 1
	}

	stamped := make([]bool, len(names))

	var group errgroup.Group
	group.SetLimit(threads)

	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			changed, err := stampFile(name, newIDGenerator(int64(i)), options)
			if err != nil {
				return fmt.Errorf("stamp %s: %w", name, err)
			}
			stamped[i] = changed
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return stamped, nil
}

func stampFile(name string, gen *tweet.IDGenerator, options stampOptions) (bool, error) {
	if name == stdinName {
		return false, errors.New("stamp only works on files")
	}

	doc, err := readFile(name)
	if err != nil {
		return false, err
	}

	before, err := digest.Document(doc)
	if err != nil {
		return false, err
	}
	original := doc.Clone()

	if _, err := tweet.Stamp(doc, gen, options.skipDate); err != nil {
		return false, err
	}

	after, err := digest.Document(doc)
	if err != nil {
		return false, err
	}

	if before == after {
		logger().Debug("record unchanged", "file", name, "digest", before.String())
		return false, nil
	}

	for _, change := range diff.Documents(original, doc) {
		logger().Debug("record stamped", "file", name, "op", change.Op.String(), "path", change.Path.String())
	}

	if err := writeFile(name, doc, options.pretty); err != nil {
		return false, err
	}

	return true, nil
}

func init() {
	rootCmd.AddCommand(stampCmd)
}
