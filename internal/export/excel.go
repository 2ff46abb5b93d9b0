package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// Customers writes the given customers to an XLSX workbook at path.
// Callers pass the currently filtered view so the export matches what
// the admin sees on screen.
func Customers(path string, customers []models.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.CustomerName, c.Email, c.Phone, c.VehicleNo,
		})
	}

	headers := []string{"ID", "Name", "Email", "Phone", "Vehicle No"}
	return writeSheet(path, "Customers", headers, rows)
}

// Stocks writes the given inventory items to an XLSX workbook at path.
func Stocks(path string, stocks []models.Stock) error {
	rows := make([][]string, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, []string{
			strconv.Itoa(s.ID), s.ItemName, s.Category,
			strconv.Itoa(s.Quantity), strconv.FormatFloat(s.Price, 'f', 2, 64),
		})
	}

	headers := []string{"ID", "Item Name", "Category", "Quantity", "Unit Price"}
	return writeSheet(path, "Stocks", headers, rows)
}

func writeSheet(path, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
