// Package export renders reports as xlsx workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"makhzan/internal/domain/ledger"
)

var reportHeaders = []interface{}{
	"الصنف", "الرمز", "الوحدة", "التصنيف",
	"إجمالي الوارد", "إجمالي المنصرف", "الرصيد الحالي", "آخر حركة",
}

var lowStockHeaders = []interface{}{
	"الصنف", "الرمز", "الوحدة",
	"الرصيد الحالي", "الحد الأدنى", "العجز / النقص", "الحالة",
}

// MaterialReportWorkbook builds the stock balance sheet.
func MaterialReportWorkbook(reports []ledger.MaterialReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := writeRow(f, sheet, 1, reportHeaders); err != nil {
		return nil, err
	}

	for i, r := range reports {
		last := ""
		if r.LastMovement != nil {
			last = r.LastMovement.String()
		}
		row := []interface{}{
			r.Name, r.SKU, r.Unit, r.Category,
			r.TotalIn.String(), r.TotalOut.String(), r.CurrentStock.String(), last,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// LowStockWorkbook builds the low stock alert sheet.
func LowStockWorkbook(items []ledger.LowStockItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := writeRow(f, sheet, 1, lowStockHeaders); err != nil {
		return nil, err
	}

	for i, item := range items {
		row := []interface{}{
			item.Name, item.SKU, item.Unit,
			item.CurrentStock.String(), item.MinQuantity.String(),
			item.DeficitLabel(), string(item.Status),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("coordinates for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
