package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xuri/excelize/v2"

	"github.com/creocert/sheet-filler/internal/mapping"
	"github.com/creocert/sheet-filler/internal/workbook"
)

type resolver interface {
	Is(str string) bool
	Resolve(text string, m mapping.Mapping, row map[string]string) string
}

// Facade fills a template workbook: one output sheet per detail row.
type Facade struct {
	resolver resolver

	logger log.Logger
}

// NewFacade ...
func NewFacade(
	resolver resolver,
	logger log.Logger,
) *Facade {
	return &Facade{
		resolver: resolver,
		logger:   logger,
	}
}

// FillIn clones the first worksheet of the template at templatePath
// once per detail row, resolves placeholders against the combined
// detail+grade row and returns the serialized workbook. The template
// sheet itself never appears in the result.
func (f *Facade) FillIn(ctx context.Context, templatePath string, book *workbook.Book, m mapping.Mapping) (io.Reader, error) {
	file, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, &TemplateError{Err: fmt.Errorf("open template: %s", err)}
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &TemplateError{Err: fmt.Errorf("template file has no worksheets")}
	}
	templateSheet := sheets[0]

	// Seed with existing titles so a row cannot claim the template
	// sheet's title and then vanish with it at finalization.
	used := make(map[string]bool, len(sheets)+len(book.Details))
	for _, sheet := range sheets {
		used[sheet] = true
	}

	nameColumn := m.Column(m.NameKey(), "")

	for i, detail := range book.Details {
		name := detail[nameColumn]
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Row %d", i+1)
		}
		title := dedupeTitle(sanitizeTitle(name), used)

		f.cloneSheet(file, templateSheet, title)

		row := combineRow(detail, firstMatch(book.Grades, nameColumn, name))
		if err = f.renderSheet(file, title, m, row); err != nil {
			return nil, &RenderError{Sheet: title, Err: err}
		}
	}

	file.DeleteSheet(templateSheet)

	var result bytes.Buffer
	if err = file.Write(&result); err != nil {
		return nil, &SaveError{Err: err}
	}
	return &result, nil
}

// cloneSheet copies the template sheet under title. The structural copy
// keeps formatting; if it fails the manual copy still produces values
// and merge ranges, so cloning itself never fails the request.
func (f *Facade) cloneSheet(file *excelize.File, src, dst string) {
	if err := f.copySheet(file, src, dst); err != nil {
		level.Warn(f.logger).Log("msg", "structural sheet copy failed, copying cells", "sheet", dst, "err", err)
		f.copyCells(file, src, dst)
	}
}

func (f *Facade) copySheet(file *excelize.File, src, dst string) error {
	idx := file.NewSheet(dst)
	return file.CopySheet(file.GetSheetIndex(src), idx)
}

// copyCells recreates merge ranges and non-empty cell values of src on
// dst. Styles do not survive this path.
func (f *Facade) copyCells(file *excelize.File, src, dst string) {
	if file.GetSheetIndex(dst) == -1 {
		file.NewSheet(dst)
	}
	mergedCells, _ := file.GetMergeCells(src)
	for _, mergedCell := range mergedCells {
		file.MergeCell(dst, mergedCell.GetStartAxis(), mergedCell.GetEndAxis())
	}
	rows, _ := file.GetRows(src)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			file.SetCellValue(dst, axis, value)
		}
	}
}

func (f *Facade) renderSheet(file *excelize.File, sheet string, m mapping.Mapping, row map[string]string) error {
	rows, err := file.GetRows(sheet)
	if err != nil {
		return err
	}
	for rowIdx, cells := range rows {
		for colIdx, text := range cells {
			if !f.resolver.Is(text) {
				continue
			}
			resolved := f.resolver.Resolve(text, m, row)
			if resolved == text {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err = file.SetCellValue(sheet, axis, resolved); err != nil {
				return err
			}
		}
	}
	return nil
}
