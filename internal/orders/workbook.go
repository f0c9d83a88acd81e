// Package orders loads guild buy/sell order boards from a local workbook
// and exports price summaries back out.
package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Order side names, which double as workbook sheet names.
const (
	SheetBuyOrders  = "Buy Orders"
	SheetSellOrders = "Sell Orders"
)

// Side tells buy orders from sell orders.
type Side string

// Sides.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Order is one row of the board.
type Order struct {
	Side     Side
	Item     string // display name as written in the sheet
	ItemID   string // catalog identifier
	Quantity int64
	Price    int64 // silver per unit
}

// LoadWorkbook reads all buy and sell orders from the workbook at path.
// Expected columns per sheet: Item, Item ID, Quantity, Price, with a header
// row. Blank rows are skipped.
func LoadWorkbook(path string) ([]Order, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	buys, err := loadSheet(f, SheetBuyOrders, SideBuy)
	if err != nil {
		return nil, err
	}
	sells, err := loadSheet(f, SheetSellOrders, SideSell)
	if err != nil {
		return nil, err
	}

	return append(buys, sells...), nil
}

func loadSheet(f *excelize.File, sheet string, side Side) ([]Order, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		// A board may carry only one side.
		return nil, nil
	}

	var orders []Order
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad quantity %q", sheet, i+1, row[2])
		}
		price, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad price %q", sheet, i+1, row[3])
		}

		orders = append(orders, Order{
			Side:     side,
			Item:     strings.TrimSpace(row[0]),
			ItemID:   strings.TrimSpace(row[1]),
			Quantity: qty,
			Price:    price,
		})
	}

	return orders, nil
}

// BySide splits orders into buy and sell groups, preserving order.
func BySide(orders []Order) (buys, sells []Order) {
	for _, o := range orders {
		switch o.Side {
		case SideBuy:
			buys = append(buys, o)
		case SideSell:
			sells = append(sells, o)
		}
	}
	return buys, sells
}
