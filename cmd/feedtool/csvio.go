package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readTable reads a CSV file whose first record is the header.
func readTable(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read csv: missing header")
	}
	header = records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, records[1:], nil
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// columnIndex finds a header column by case-insensitive name, or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell returns row[i], or "" when the row is short or i is -1.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// setCell writes row[i], padding a short row first.
func setCell(row []string, i int, value string) []string {
	for len(row) <= i {
		row = append(row, "")
	}
	row[i] = value
	return row
}

// rewriteFile reads input, transforms it and writes output. When output is
// empty the input file is replaced.
func rewriteFile(input, output string, transform func(io.Reader, io.Writer) error) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	if output == "" {
		output = input
	}
	tmp, err := os.CreateTemp(filepath.Dir(output), ".feedtool-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := transform(in, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), output)
}

