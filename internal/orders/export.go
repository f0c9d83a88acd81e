package orders

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
)

// ExportPrices writes a current-price summary workbook for one item. One
// row per location with the latest minimum sell and maximum buy prices.
func ExportPrices(path, itemName, itemID string, prices []api.CurrentPrice) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Prices"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Location", "Quality", "Min Sell", "Max Buy", "Sell Updated", "Buy Updated"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, p := range prices {
		values := []any{p.City, p.Quality, p.SellPriceMin, p.BuyPriceMax, p.SellPriceMinDate, p.BuyPriceMaxDate}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	titleCell, err := excelize.CoordinatesToCellName(len(headers)+2, 1)
	if err != nil {
		return fmt.Errorf("title cell: %w", err)
	}
	if err := f.SetCellValue(sheet, titleCell, fmt.Sprintf("%s (%s)", itemName, itemID)); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
