package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Store persists report workbooks as .xlsx files.
type Store interface {
	Load(ctx context.Context, path string, sheets ...string) (domain.Workbook, error)
	Save(ctx context.Context, path string, wb domain.Workbook) (int64, error)
}

type fileStore struct{}

func NewStore() Store {
	return fileStore{}
}

// Load reads the named sheets of the workbook at path. A missing file or
// sheet is not an error; it is simply absent from the result.
func (fileStore) Load(ctx context.Context, path string, sheets ...string) (domain.Workbook, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("no previous report")
		return domain.Workbook{}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Workbook{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	existing := f.GetSheetList()
	var wb domain.Workbook
	for _, name := range sheets {
		if !slices.Contains(existing, name) {
			continue
		}
		sheet, err := readSheet(f, name)
		if err != nil {
			return domain.Workbook{}, err
		}
		logger.Debug().Str("sheet", name).Int("rows", len(sheet.Rows)).Msg("loaded sheet")
		wb.Put(sheet)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (domain.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	sheet := domain.Sheet{Name: name}
	if len(rows) == 0 {
		return sheet, nil
	}
	sheet.Header = rows[0]

	for r, row := range rows[1:] {
		values := make([]any, len(row))
		for c, raw := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return domain.Sheet{}, err
			}
			typ, err := f.GetCellType(name, cell)
			if err != nil {
				return domain.Sheet{}, fmt.Errorf("failed to read cell %s!%s: %w", name, cell, err)
			}
			values[c] = typedValue(typ, raw)
		}
		sheet.Rows = append(sheet.Rows, trimTrailingNil(values))
	}
	return sheet, nil
}

func typedValue(typ excelize.CellType, raw string) any {
	if raw == "" {
		return nil
	}
	switch typ {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

func trimTrailingNil(values []any) []any {
	end := len(values)
	for end > 0 && values[end-1] == nil {
		end--
	}
	return values[:end]
}

// Save rewrites the file at path with exactly the sheets of wb, in order,
// and returns the size of the written file. The file is replaced atomically
// and keeps the permissions of the file it replaces.
func (fileStore) Save(ctx context.Context, path string, wb domain.Workbook) (int64, error) {
	logger := zerolog.Ctx(ctx)

	if len(wb.Sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return 0, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return 0, fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet); err != nil {
			return 0, err
		}
	}
	f.SetActiveSheet(0)

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.xlsx")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = tmp.Chmod(mode)
	if err == nil {
		_, err = f.WriteTo(tmp)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}

	info, err := os.Stat(tmp.Name())
	if err != nil {
		return 0, fmt.Errorf("failed to stat workbook: %w", err)
	}
	size := info.Size()

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int64("bytes", size).Msg("workbook saved")
	return size, nil
}

func writeSheet(f *excelize.File, sheet domain.Sheet) error {
	if sheet.Empty() {
		return nil
	}

	for c, title := range sheet.Header {
		if err := setCell(f, sheet.Name, c+1, 1, title); err != nil {
			return err
		}
	}
	for r, row := range sheet.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			if err := setCell(f, sheet.Name, c+1, r+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}
