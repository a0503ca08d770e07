package loader

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/model"
)

// Options describes the workbook layout: one sheet per status, columns
// addressed by header name (case-insensitive).
type Options struct {
	WhitelistSheet string
	BlacklistSheet string
	NameColumn     string
	CategoryColumn string
	NotesColumn    string
}

// DefaultOptions returns the standard workbook layout.
func DefaultOptions() Options {
	return Options{
		WhitelistSheet: "Whitelist",
		BlacklistSheet: "Blacklist",
		NameColumn:     "Company Name",
		CategoryColumn: "Category",
		NotesColumn:    "Notes",
	}
}

// LoadFile reads the whitelist/blacklist workbook into an ordered record
// slice. Duplicate names (case-insensitive) keep their original position;
// the last occurrence wins and each overwrite is logged, not rejected.
func LoadFile(path string, opts Options) ([]model.CompanyRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
	default:
		return nil, eris.Errorf("loader: unsupported file format %q, expected .xlsx or .xlsm", filepath.Ext(path))
	}

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: open %s", path)
	}

	opts = withDefaults(opts)

	var records []model.CompanyRecord
	index := make(map[string]int)

	for _, src := range []struct {
		sheet  string
		status model.Status
	}{
		{opts.WhitelistSheet, model.StatusWhitelisted},
		{opts.BlacklistSheet, model.StatusBlacklisted},
	} {
		sheet, ok := f.Sheet[src.sheet]
		if !ok {
			zap.L().Warn("loader: sheet not found", zap.String("sheet", src.sheet), zap.String("file", path))
			continue
		}
		loadSheet(sheet, src.status, opts, &records, index)
	}

	zap.L().Info("loader: company lists loaded",
		zap.String("file", path),
		zap.Int("records", len(records)),
	)

	return records, nil
}

func loadSheet(sheet *xlsx.Sheet, status model.Status, opts Options, records *[]model.CompanyRecord, index map[string]int) {
	if len(sheet.Rows) == 0 {
		return
	}

	cols := headerIndex(sheet.Rows[0])
	nameCol, ok := cols[strings.ToLower(opts.NameColumn)]
	if !ok {
		zap.L().Warn("loader: name column not found",
			zap.String("sheet", sheet.Name),
			zap.String("column", opts.NameColumn),
		)
		return
	}

	for _, row := range sheet.Rows[1:] {
		name := strings.TrimSpace(cellValue(row, nameCol))
		if name == "" {
			continue
		}

		rec := model.CompanyRecord{Name: name, Status: status}
		if col, ok := cols[strings.ToLower(opts.CategoryColumn)]; ok {
			rec.Category = strings.TrimSpace(cellValue(row, col))
		}
		if col, ok := cols[strings.ToLower(opts.NotesColumn)]; ok {
			rec.Notes = strings.TrimSpace(cellValue(row, col))
		}

		key := strings.ToLower(name)
		if i, dup := index[key]; dup {
			zap.L().Warn("loader: duplicate company, last occurrence wins",
				zap.String("name", name),
				zap.String("previous_status", string((*records)[i].Status)),
				zap.String("status", string(status)),
			)
			(*records)[i] = rec
			continue
		}

		index[key] = len(*records)
		*records = append(*records, rec)
	}
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.WhitelistSheet == "" {
		opts.WhitelistSheet = def.WhitelistSheet
	}
	if opts.BlacklistSheet == "" {
		opts.BlacklistSheet = def.BlacklistSheet
	}
	if opts.NameColumn == "" {
		opts.NameColumn = def.NameColumn
	}
	if opts.CategoryColumn == "" {
		opts.CategoryColumn = def.CategoryColumn
	}
	if opts.NotesColumn == "" {
		opts.NotesColumn = def.NotesColumn
	}
	return opts
}

func headerIndex(row *xlsx.Row) map[string]int {
	cols := make(map[string]int, len(row.Cells))
	for i, cell := range row.Cells {
		if h := strings.ToLower(strings.TrimSpace(cell.String())); h != "" {
			cols[h] = i
		}
	}
	return cols
}

func cellValue(row *xlsx.Row, col int) string {
	if col >= len(row.Cells) {
		return ""
	}
	return row.Cells[col].String()
}
