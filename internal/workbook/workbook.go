package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

var (
	// ErrTooFewSheets means the uploaded workbook misses the grades sheet.
	ErrTooFewSheets = errors.New("workbook must have at least two sheets: details and grades")
	// ErrNoDetails means the details sheet has no data rows.
	ErrNoDetails = errors.New("details sheet is empty")
)

// Row of an uploaded data sheet, keyed by header column name.
type Row map[string]string

// Book holds the rows of the two data sheets of an upload.
type Book struct {
	Details []Row
	Grades  []Row
}

// Extractor reads uploaded data workbooks.
type Extractor struct {
}

// NewExtractor ...
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Book parses workbook bytes. Sheet one is details, sheet two is
// grades; the header row names the columns, empty cells become empty
// strings, fully empty rows are dropped.
func (e *Extractor) Book(data []byte) (*Book, error) {
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %s", err)
	}
	if len(wb.Sheets) < 2 {
		return nil, ErrTooFewSheets
	}

	details, err := e.rows(wb.Sheets[0])
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNoDetails
	}
	grades, err := e.rows(wb.Sheets[1])
	if err != nil {
		return nil, err
	}

	return &Book{
		Details: details,
		Grades:  grades,
	}, nil
}

func (e *Extractor) rows(sheet *xlsx.Sheet) (rows []Row, err error) {
	if sheet.MaxRow < 2 {
		return
	}

	header := make([]string, 0, sheet.MaxCol)
	for colIdx := 0; colIdx < sheet.MaxCol; colIdx++ {
		cell, err := sheet.Cell(0, colIdx)
		if err != nil {
			return nil, fmt.Errorf("sheet %s header: %s", sheet.Name, err)
		}
		header = append(header, strings.TrimSpace(cell.Value))
	}

	for rowIdx := 1; rowIdx < sheet.MaxRow; rowIdx++ {
		row := make(Row, len(header))
		isEmpty := true
		for colIdx, column := range header {
			if column == "" {
				continue
			}
			cell, err := sheet.Cell(rowIdx, colIdx)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %s", sheet.Name, rowIdx+1, err)
			}
			row[column] = cell.Value
			if cell.Value != "" {
				isEmpty = false
			}
		}
		if !isEmpty {
			rows = append(rows, row)
		}
	}
	return
}
