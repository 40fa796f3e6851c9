// Package spreadsheet converts uploaded catalog files into ordered sequences
// of header-keyed rows. A file is either a workbook (first sheet only, first
// row is the header) or delimited text with the same layout.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when the upload is neither a workbook
	// nor delimited text.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrEmptyInput is returned when no data rows follow the header.
	ErrEmptyInput = errors.New("no rows after header")
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Row is one spreadsheet row keyed by header column name. Cell values are the
// raw strings the file carried; coercion happens downstream.
type Row map[string]interface{}

// Parse reads an uploaded catalog file. The filename extension decides the
// parser; when the extension is unknown the content is sniffed instead.
func Parse(filename string, data []byte) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseWorkbook(data)
	case ".csv":
		return parseCSV(data)
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is(xlsxMIME):
		return parseWorkbook(data)
	case mtype.Is("text/csv"), mtype.Is("text/plain"):
		return parseCSV(data)
	}

	return nil, errors.WithStack(ErrUnsupportedFormat)
}

func parseWorkbook(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithStack(ErrUnsupportedFormat)
	}
	// The workbook handle owns a temp-file spill for large sheets; release it
	// even when parsing fails.
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return rowsFromRecords(records)
}

func parseCSV(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records := [][]string{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		records = append(records, record)
	}

	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	header := records[0]
	rows := []Row{}
	for _, record := range records[1:] {
		row := Row{}
		empty := true
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[name] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	return rows, nil
}
