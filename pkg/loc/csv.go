package loc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names of the CSV dataset.
const (
	ColFile     = "file"
	ColLine     = "line"
	ColType     = "type"
	ColCommit   = "commit"
	ColAuthor   = "author"
	ColDate     = "date"
	ColTime     = "time"
	ColTimezone = "timezone"
	ColDatetime = "datetime"
	ColDepth    = "depth"
	ColLength   = "length"
)

// Columns is the column order written by Write.
var Columns = []string{
	ColFile, ColLine, ColType, ColCommit, ColAuthor,
	ColDate, ColTime, ColTimezone, ColDatetime, ColDepth, ColLength,
}

// byteOrderMark may prefix the first header cell of spreadsheet exports.
const byteOrderMark = "\ufeff"

// DatetimeLayout is the layout used when writing the datetime column.
const DatetimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Sentinel errors for dataset parsing.
var (
	// ErrMissingColumn indicates a required header column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrBadDatetime indicates a row whose timestamp cannot be parsed.
	ErrBadDatetime = errors.New("unparsable datetime")
)

// datetimeLayouts are tried in order when parsing the datetime column.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

// Load reads a CSV dataset from path.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses a CSV dataset with a header row. Columns may appear in any
// order; unknown columns are ignored. Unparsable numeric cells become zero.
func Read(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewStore(nil), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))] = i
	}

	for _, required := range []string{ColCommit, ColDatetime} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []Record

	for row := 2; ; row++ {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("read row %d: %w", row, readErr)
		}

		rec, parseErr := parseRow(index, fields)
		if parseErr != nil {
			return nil, fmt.Errorf("row %d: %w", row, parseErr)
		}

		records = append(records, rec)
	}

	return &Store{records: records}, nil
}

func parseRow(index map[string]int, fields []string) (Record, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(fields) {
			return ""
		}

		return fields[i]
	}

	rec := Record{
		Commit:   cell(ColCommit),
		File:     cell(ColFile),
		Line:     atoi(cell(ColLine)),
		Depth:    atoi(cell(ColDepth)),
		Length:   atoi(cell(ColLength)),
		Type:     cell(ColType),
		Author:   cell(ColAuthor),
		Date:     cell(ColDate),
		Time:     cell(ColTime),
		Timezone: cell(ColTimezone),
	}

	ts, err := parseDatetime(cell(ColDatetime), rec.Date, rec.Time, rec.Timezone)
	if err != nil {
		return Record{}, err
	}

	rec.Datetime = ts

	return rec, nil
}

// parseDatetime parses the datetime cell, falling back to the date, time and
// timezone columns when the cell is empty.
func parseDatetime(raw, date, clock, zone string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" && date != "" && clock != "" {
		raw = date + "T" + clock + zone
	}

	for _, layout := range datetimeLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDatetime, raw)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return n
}

// Write emits records as CSV with a header row in Columns order.
func Write(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)

	err := writer.Write(Columns)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range records {
		rec := &records[i]

		rowErr := writer.Write([]string{
			rec.File,
			strconv.Itoa(rec.Line),
			rec.Type,
			rec.Commit,
			rec.Author,
			rec.Date,
			rec.Time,
			rec.Timezone,
			rec.Datetime.Format(DatetimeLayout),
			strconv.Itoa(rec.Depth),
			strconv.Itoa(rec.Length),
		})
		if rowErr != nil {
			return fmt.Errorf("write row %d: %w", i+1, rowErr)
		}
	}

	writer.Flush()

	err = writer.Error()
	if err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// Save writes records to path, replacing any existing file.
func Save(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}

	writeErr := Write(file, records)
	closeErr := file.Close()

	return errors.Join(writeErr, closeErr)
}
