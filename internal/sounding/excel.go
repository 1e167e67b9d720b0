package sounding

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadExcel reads a sounding table from the first sheet of an .xlsx
// workbook. The first row is the header; schema and cell parsing follow the
// same rules as the CSV loader. Many CPT rigs export their logs as Excel
// workbooks rather than delimited text.
func LoadExcel(path string, opts LoadOptions) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	records, err := parseRows(rows[0], rows[1:], opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}
