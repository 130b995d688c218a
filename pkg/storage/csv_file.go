package storage

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/matst80/slask-view/pkg/types"
	"github.com/pkg/errors"
)

// CsvFile reads a separated file where the first row names the fields.
// Cells that parse as integers, floats or booleans are stored as such.
type CsvFile struct {
	Path  string
	Comma rune
}

func (f *CsvFile) FetchAll(ctx context.Context) ([]types.Record, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read from %s", f.Path)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.Comma = ';'
	if f.Comma != 0 {
		csvReader.Comma = f.Comma
	}
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s as csv", f.Path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, max(len(rows)-1, 0))
	if len(rows) == 0 {
		return records, nil
	}
	header := rows[0]
	for _, row := range rows[1:] {
		record := make(types.Record, len(header))
		for i, key := range header {
			if i >= len(row) {
				break
			}
			record[strings.TrimSpace(key)] = coerce(row[i])
		}
		records = append(records, record)
	}
	return records, nil
}

func coerce(cell string) any {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if i, err := strconv.Atoi(cell); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	switch cell {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}
