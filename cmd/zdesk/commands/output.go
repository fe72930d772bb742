package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
)

// writeStructured encodes value as JSON or YAML. It reports false for table output so
// the caller can render its own table.
func writeStructured(w io.Writer, format string, value interface{}) (bool, error) {
	switch format {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(value)
	case constants.OutputFormatTable, "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// renderList writes items as a table with one row per item, or as JSON/YAML.
func renderList[T any](w io.Writer, format string, items []T, header []string, row func(T) []string) error {
	done, err := writeStructured(w, format, items)
	if done || err != nil {
		return err
	}

	if len(items) == 0 {
		_, err = io.WriteString(w, "No results found\n")

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(toAny(header)...)

	for _, item := range items {
		_ = table.Append(row(item))
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderEntity writes a Property/Value table, or value as JSON/YAML.
func renderEntity(w io.Writer, format string, value interface{}, rows [][]string) error {
	done, err := writeStructured(w, format, value)
	if done || err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// formatRef renders an optional reference; the API omits unset ones, which decode as 0.
func formatRef(id int64) string {
	if id == 0 {
		return "-"
	}

	return formatID(id)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Format(time.RFC3339)
}

func formatValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatBool(value *bool) string {
	if value == nil {
		return "-"
	}

	return strconv.FormatBool(*value)
}

func formatInt(value *int) string {
	if value == nil {
		return "-"
	}

	return strconv.Itoa(*value)
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return strings.Join(parts, ", ")
}
