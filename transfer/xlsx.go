package transfer

import (
	"context"

	"github.com/mmdatafocus/blending_backend/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ExportXlsx renders the same columns and rows as Export into a workbook.
func ExportXlsx(ctx context.Context, store *models.Store, entityKey string) (*excelize.File, error) {
	rows, err := collectRows(ctx, store, entityKey)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	for i, column := range Columns(entityKey) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return nil, err
		}
	}

	for rowNo, row := range rows {
		for colNo, value := range row {
			cell, err := excelize.CoordinatesToCellName(colNo+1, rowNo+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// TemplateXlsx renders a header-only workbook for an entity key. Unknown
// keys fall back to the generic columns, matching Template.
func TemplateXlsx(entityKey string) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}
	for i, column := range Columns(entityKey) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return nil, err
		}
	}
	return f, nil
}
