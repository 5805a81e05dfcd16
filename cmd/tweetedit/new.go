package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/tweet"
)

const (
	screenNameFlagName = "screen-name"
	textFlagName       = "text"
	latLonFlagName     = "latlon"
	noGeoFlagName      = "no-geo"
	templateFlagName   = "template"
)

// newIDGenerator returns the ID generator for the i-th record a command
// handles. Records processed concurrently each get their own.
var newIDGenerator = func(i int64) *tweet.IDGenerator {
	return tweet.NewIDGenerator(time.Now, time.Now().UnixNano()+i)
}

// newCmd represents the new command.
var newCmd = newNewCmd()

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a fresh post record",
		Long: `Print a new post record with a generated ID. The position defaults to the
configured location unless --latlon or --no-geo is given. With --template
the blank record of the editor is printed instead.`,
		Args:   cobra.NoArgs,
		PreRun: bindOnRun(skipDateFlagName, skipDateConfigKey),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readNewFlags(cmd.Flags())
			if err != nil {
				return err
			}

			gen := newIDGenerator(0)
			options := documentOptions()

			var doc *pathdoc.Document
			if f.template {
				doc, err = tweet.Template(gen, options)
			} else {
				draft := tweet.Draft{ScreenName: f.screenName, Text: f.text}
				if !f.noGeo {
					position := defaultLocation()
					if f.latLon != "" {
						position, err = tweet.ParseLatLon(f.latLon)
						if err != nil {
							return err
						}
					}
					draft.Geo = &position
				}
				doc, err = tweet.Build(gen, options, draft)
			}
			if err != nil {
				return err
			}

			if _, err := tweet.Stamp(doc, gen, viper.GetBool(skipDateConfigKey)); err != nil {
				return err
			}

			logger().Debug("record created", "id", doc.Get(tweet.PathIDStr))

			return printValue(cmd, doc.Root())
		},
	}

	cmd.Flags().String(screenNameFlagName, "", "screen name of the author")
	cmd.Flags().String(textFlagName, "", "text of the post")
	cmd.Flags().String(latLonFlagName, "", `position as "lat,lon"`)
	cmd.Flags().Bool(noGeoFlagName, false, "leave the coordinates out")
	cmd.Flags().Bool(templateFlagName, false, "print the blank editor template")
	cmd.Flags().Bool(skipDateFlagName, viper.GetBool(skipDateConfigKey), "do not add created_at")
	cmd.MarkFlagsMutuallyExclusive(latLonFlagName, noGeoFlagName)

	return cmd
}

type newFlags struct {
	template   bool
	screenName string
	text       string
	latLon     string
	noGeo      bool
}

func readNewFlags(flags *pflag.FlagSet) (newFlags, error) {
	var f newFlags
	var err error
	if f.template, err = flags.GetBool(templateFlagName); err != nil {
		return f, err
	}
	if f.screenName, err = flags.GetString(screenNameFlagName); err != nil {
		return f, err
	}
	if f.text, err = flags.GetString(textFlagName); err != nil {
		return f, err
	}
	if f.latLon, err = flags.GetString(latLonFlagName); err != nil {
		return f, err
	}
	if f.noGeo, err = flags.GetBool(noGeoFlagName); err != nil {
		return f, err
	}
	return f, nil
}

func init() {
	rootCmd.AddCommand(newCmd)
}
