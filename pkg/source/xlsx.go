package source

import (
	"io"
	"os"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// LoadXLSX reads a pivot table from a worksheet of the workbook at path.
// An empty sheet selects the first worksheet.
func LoadXLSX(path, sheet string) (*Table, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "workbook %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// ReadXLSX reads a pivot table from a workbook stream. It does not close r.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()
	return readSheet(f, sheet)
}

// readSheet takes the first non-empty row as the header. Cell values come
// back formatted as displayed and are parsed with parseValue.
func readSheet(f *excelize.File, sheet string) (*Table, error) {
	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "workbook has no worksheets")
		}
		sheet = sheets[0]
	} else {
		if err := errors.ValidateSheetName(sheet); err != nil {
			return nil, err
		}
		if !slices.Contains(sheets, sheet) {
			return nil, errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found (have %v)", sheet, sheets)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %s", sheet)
	}

	start := slices.IndexFunc(rows, func(row []string) bool {
		return slices.ContainsFunc(row, func(c string) bool { return c != "" })
	})
	if start < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sheet %q is empty", sheet)
	}

	t := FromRecords(rows[start], rows[start+1:])
	t.Name = sheet
	return t, nil
}
