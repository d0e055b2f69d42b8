package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{FormatText, FormatJSON}

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Tabular is implemented by results that render as a text table.
type Tabular interface {
	Header() []string
	Rows() [][]string
}

// ResponseJSON writes the JSON envelope
func ResponseJSON(w io.Writer, status bool, message string, data, errors any) error {
	response := Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

// ResponseSuccess writes a successful result in the requested format
func ResponseSuccess(w io.Writer, format, message string, data any) error {
	if format == FormatJSON {
		return ResponseJSON(w, true, message, data, nil)
	}

	if _, err := fmt.Fprintln(w, message); err != nil {
		return err
	}
	if t, ok := data.(Tabular); ok {
		return writeTable(w, t)
	}
	return nil
}

// ResponseError writes a failure in the requested format
func ResponseError(w io.Writer, format, message string, errors map[string]string) error {
	if format == FormatJSON {
		var errs any
		if len(errors) > 0 {
			errs = errors
		}
		return ResponseJSON(w, false, message, nil, errs)
	}

	if _, err := fmt.Fprintf(w, "error: %s\n", message); err != nil {
		return err
	}

	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", field, errors[field]); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, t Tabular) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(toRow(t.Header()))
	for _, row := range t.Rows() {
		tw.AppendRow(toRow(row))
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
