package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/university-service/internal/models"
)

type exportService struct {
	deps Dependencies
}

func NewExportService(deps Dependencies) ExportService {
	return &exportService{deps: deps}
}

// ExportRoster renders every account of role into a single-sheet workbook.
// Columns follow models.ColumnsForRole; unset optional fields stay empty.
func (s *exportService) ExportRoster(ctx context.Context, role models.UserRole) ([]byte, error) {
	if !role.IsValid() {
		return nil, ErrValidationFailed
	}

	accounts, err := listAccounts(ctx, s.deps.Repo, nil, role)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.deps.Logger.WarnContext(ctx, "Failed to close workbook", "error", err)
		}
	}()

	// a new workbook starts with a single default sheet
	sheet := string(role)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	columns := models.ColumnsForRole(role)
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, account := range accounts {
		fields := account.ToMap()
		for c, column := range columns {
			value := fields[column]
			if value == nil {
				continue
			}
			if err := setCell(f, sheet, c+1, r+2, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.deps.Logger.InfoContext(ctx, "Roster exported", "role", role, "rows", len(accounts))
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
