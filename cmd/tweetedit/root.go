package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const rootLongDescription = `tweetedit reads and edits post records stored as JSON.

Fields are addressed with dotted paths such as user.screen_name or
entities.media.[0].url, where a bracketed number selects an array element.
A FILE of "-" reads the record from standard input.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tweetedit",
		Short:        "Read and edit post records by path",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			if configErr != nil {
				logger().Warn("config file ignored", "file", configFileName, "error", configErr)
			}
			_, err := parseOutputFormat(viper.GetString(outputFormatKey))
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(prettyFlagName, viper.GetBool(outputPrettyKey), "indent JSON output")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(prettyFlagName), outputPrettyKey)

	cmd.PersistentFlags().StringP(formatFlagName, "f", viper.GetString(outputFormatKey), "output format: json, yaml or msgpack")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), outputFormatKey)

	cmd.PersistentFlags().String(logFileFlagName, viper.GetString(logFilenameKey), "file to write logs to")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// bindOnRun binds a flag that several commands share a config key for. Viper
// keeps one flag per key, so the binding is made for the command being run.
func bindOnRun(name, key string) func(cmd *cobra.Command, _ []string) {
	return func(cmd *cobra.Command, _ []string) {
		bindFlagToConfig(cmd.Flags().Lookup(name), key)
	}
}

func addWriteFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP(writeFlagName, "w", false, "write the result back to FILE instead of printing it")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
