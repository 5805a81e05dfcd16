package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanity-io/pathdoc/internal/tweet"
)

const clearFlagName = "clear"

// geoCmd represents the geo command.
var geoCmd = newGeoCmd()

func newGeoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo FILE [LAT,LON]",
		Short: "Show or change the position of a record",
		Long: `Without a position, print the position of the record as "lat,lon", or the
configured default followed by "(default)" when it has none. With a position,
set both geo ([lat, lon]) and coordinates ([lon, lat]). --clear sets both to null.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clearGeo, err := cmd.Flags().GetBool(clearFlagName)
			if err != nil {
				return err
			}
			if clearGeo && len(args) == 2 {
				return errors.New("--clear does not take a position")
			}

			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			switch {
			case clearGeo:
				err = tweet.ClearGeo(doc)
			case len(args) == 2:
				var position tweet.LatLon
				position, err = tweet.ParseLatLon(args[1])
				if err == nil {
					err = tweet.SetGeo(doc, position)
				}
			default:
				position, ok := tweet.LookupGeo(doc, defaultLocation())
				if !ok {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), position.String(), "(default)")
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), position.String())
				return err
			}
			if err != nil {
				return err
			}

			return emit(cmd, args[0], doc)
		},
	}

	cmd.Flags().Bool(clearFlagName, false, "set geo and coordinates to null")
	addWriteFlag(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(geoCmd)
}
