// Package export renders users as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/filex"
)

const (
	SheetName = "Users"
	FileName  = "users.xlsx"
)

// WriteUsers writes a workbook with a single sheet: a header row of field
// names followed by one row per user.
func WriteUsers(w io.Writer, users []models.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(models.UserFields))
	for i, name := range models.UserFields {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, u := range users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := u.Row()
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// FileExporter saves exports as FileName inside Dir.
type FileExporter struct {
	Dir string
}

// Export writes users to Dir/users.xlsx, replacing any previous export,
// and returns the file path.
func (e FileExporter) Export(users []models.User) (string, error) {
	dir, err := filex.EnsureSubdDir(e.Dir)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".users-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteUsers(tmp, users); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
