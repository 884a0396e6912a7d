// Package export renders catalog lists as spreadsheets for staff.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the product rows.
const SheetName = "Products"

// ContentType is the MIME type of the workbook produced by WriteProducts.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{
	"Code", "Name", "Category", "Price", "Price (NGN)", "Options", "Same Day", "Description", "Image",
}

var columnWidths = map[string]float64{
	"A": 12, "B": 40, "C": 16, "D": 12, "E": 12, "F": 48, "G": 10, "H": 60, "I": 50,
}

// WriteProducts writes products, one per row in list order, as an xlsx workbook.
func WriteProducts(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := productRow(p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return f.Write(w)
}

func productRow(p domain.Product) []interface{} {
	sameDay := "No"
	if p.SameDay {
		sameDay = "Yes"
	}
	return []interface{}{
		p.ProductID,
		p.Name,
		string(p.Category),
		p.Price,
		p.PriceValue,
		formatVariants(p.Variants),
		sameDay,
		p.Description,
		p.ImageURL,
	}
}

func formatVariants(variants []domain.Variant) string {
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = fmt.Sprintf("%s (%s)", v.Name, v.Price)
	}
	return strings.Join(parts, " | ")
}
