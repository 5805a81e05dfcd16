package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/pkg/pathdocmsgpack"
	"github.com/sanity-io/pathdoc/pkg/pathdocyaml"
)

// stdinName is the FILE argument that stands for standard input.
const stdinName = "-"

var errWriteStdin = errors.New("cannot write back to standard input")

type outputFormat string

const (
	formatJSON    outputFormat = "json"
	formatYAML    outputFormat = "yaml"
	formatMsgpack outputFormat = "msgpack"
)

func parseOutputFormat(value string) (outputFormat, error) {
	format := outputFormat(strings.ToLower(strings.TrimSpace(value)))
	switch format {
	case formatJSON, formatYAML, formatMsgpack:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml or msgpack)", value)
}

func encodeValue(value interface{}, format outputFormat, pretty bool) ([]byte, error) {
	switch format {
	case formatYAML:
		return pathdocyaml.MarshalValue(value)
	case formatMsgpack:
		return pathdocmsgpack.MarshalValue(value)
	}

	data, err := pathdoc.MarshalValue(value)
	if err != nil {
		return nil, err
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	}
	return append(data, '\n'), nil
}

// printValue writes value to the command output in the configured format.
func printValue(cmd *cobra.Command, value interface{}) error {
	format, err := parseOutputFormat(viper.GetString(outputFormatKey))
	if err != nil {
		return err
	}
	data, err := encodeValue(value, format, viper.GetBool(outputPrettyKey))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func parseDocument(name string, data []byte) (*pathdoc.Document, error) {
	doc, err := documentOptions().Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger().Debug("document loaded", "file", name, "bytes", len(data))
	return doc, nil
}

func readFile(name string) (*pathdoc.Document, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parseDocument(name, data)
}

// readDocument loads the record named by a FILE argument.
func readDocument(cmd *cobra.Command, name string) (*pathdoc.Document, error) {
	if name != stdinName {
		return readFile(name)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return parseDocument("stdin", data)
}

// writeFile stores doc as JSON, keeping the permissions of an existing file.
func writeFile(name string, doc *pathdoc.Document, pretty bool) error {
	if name == stdinName {
		return errWriteStdin
	}

	data, err := encodeValue(doc.Root(), formatJSON, pretty)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}

	if err := os.WriteFile(name, data, perm); err != nil {
		return err
	}
	logger().Info("document written", "file", name, "bytes", len(data))
	return nil
}

// emit finishes an editing command: the document is written back with -w
// and printed otherwise.
func emit(cmd *cobra.Command, name string, doc *pathdoc.Document) error {
	write, err := cmd.Flags().GetBool(writeFlagName)
	if err != nil {
		return err
	}
	if write {
		return writeFile(name, doc, viper.GetBool(outputPrettyKey))
	}
	return printValue(cmd, doc.Root())
}
