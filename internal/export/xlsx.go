package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const priceSheet = "Prices"

var xlsxColumns = []string{
	"Code", "Name", "Category", "Base price", "Effective price",
	"Card price", "Cash price", "Orderable", "Reason", "Event",
}

// WriteXLSX writes the price list as a single-sheet workbook. Prices are
// written as numbers with two decimals.
func WriteXLSX(w io.Writer, list PriceList) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", priceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("%s price list at %s", list.OutletName, list.At.Format("2006-01-02 15:04 MST"))
	if err := f.SetCellValue(priceSheet, "A1", title); err != nil {
		return err
	}

	for i, col := range xlsxColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(priceSheet, cell, col); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(xlsxColumns), 3)
		_ = f.SetCellStyle(priceSheet, "A1", "A1", bold)
		_ = f.SetCellStyle(priceSheet, "A3", last, bold)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}

	for r, row := range list.Rows {
		line := r + 4
		values := []interface{}{
			row.Code,
			row.Name,
			row.Category,
			row.BasePrice.InexactFloat64(),
			row.EffectivePrice.InexactFloat64(),
			optionalFloat(row.CardPrice),
			optionalFloat(row.CashPrice),
			row.Orderable,
			row.Reason,
			row.EventCode,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, line)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(priceSheet, cell, v); err != nil {
				return err
			}
		}
		from, _ := excelize.CoordinatesToCellName(4, line)
		to, _ := excelize.CoordinatesToCellName(7, line)
		if err := f.SetCellStyle(priceSheet, from, to, money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(priceSheet, "B", "C", 28); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func optionalFloat(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
