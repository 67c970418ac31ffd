package export

import (
	"fmt"

	"github.com/cakebro/bakery-api/internal/application/service"
	"github.com/xuri/excelize/v2"
)

const (
	invoiceSheet = "Invoices"
	productSheet = "Product Sales"

	timestampFormat = "02 Jan 2006 15:04"
)

// XLSXBuilder renders a sales report as a spreadsheet workbook
type XLSXBuilder struct{}

// NewXLSXBuilder creates a new spreadsheet builder
func NewXLSXBuilder() *XLSXBuilder {
	return &XLSXBuilder{}
}

// Build renders the workbook: one sheet listing every invoice in the window,
// plus a product breakdown sheet when the window sold anything.
func (b *XLSXBuilder) Build(report *service.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := b.writeInvoiceSheet(f, report); err != nil {
		return nil, err
	}
	if len(report.Products) > 0 {
		if err := b.writeProductSheet(f, report); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(invoiceSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *XLSXBuilder) writeInvoiceSheet(f *excelize.File, report *service.SalesReport) error {
	if _, err := f.NewSheet(invoiceSheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s - Sales Report", report.ShopName)
	period := fmt.Sprintf("Period: %s", report.Window.Label)
	total := fmt.Sprintf("Total Sales: ₹%d", report.TotalSales)
	f.SetCellValue(invoiceSheet, "A1", title)
	f.SetCellStyle(invoiceSheet, "A1", "A1", titleStyle)
	f.SetCellValue(invoiceSheet, "A2", period)
	f.SetCellValue(invoiceSheet, "A3", total)
	f.SetCellStyle(invoiceSheet, "A3", "A3", boldStyle)

	headers := []string{"S.No", "Bill No", "Customer Name", "Customer Phone", "Date & Time", "Payment Method", "Grand Total (₹)"}
	rows := make([][]interface{}, 0, len(report.Invoices))
	for i, inv := range report.Invoices {
		name, phone := "N/A", "N/A"
		if inv.Customer != nil {
			if inv.Customer.Name != "" {
				name = inv.Customer.Name
			}
			if inv.Customer.Phone != "" {
				phone = inv.Customer.Phone
			}
		}
		rows = append(rows, []interface{}{
			i + 1,
			inv.ID.String(),
			name,
			phone,
			inv.Date.Format(timestampFormat),
			string(inv.PaymentMethod),
			inv.GrandTotal,
		})
	}

	if err := writeTable(f, invoiceSheet, 5, headers, rows, headerStyle); err != nil {
		return err
	}
	return sizeColumns(f, invoiceSheet, headers, rows, title, period, total)
}

func (b *XLSXBuilder) writeProductSheet(f *excelize.File, report *service.SalesReport) error {
	if _, err := f.NewSheet(productSheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}

	title := "Product Sales Summary"
	f.SetCellValue(productSheet, "A1", title)
	f.SetCellStyle(productSheet, "A1", "A1", titleStyle)

	headers := []string{"Product Name", "Size/Weight", "Total Qty Sold", "Total Value (₹)"}
	rows := make([][]interface{}, 0, len(report.Products))
	for _, row := range report.Products {
		rows = append(rows, []interface{}{row.ProductName, row.SizeName, row.TotalQuantity, row.TotalValue})
	}

	if err := writeTable(f, productSheet, 3, headers, rows, headerStyle); err != nil {
		return err
	}
	return sizeColumns(f, productSheet, headers, rows, title)
}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

// writeTable writes a centered header row and the data rows beneath it
func writeTable(f *excelize.File, sheet string, headerRow int, headers []string, rows [][]interface{}, headerStyle int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}

// sizeColumns widens every column to fit its longest cell. Banner lines above
// the table sit in the first column and count toward its width.
func sizeColumns(f *excelize.File, sheet string, headers []string, rows [][]interface{}, banner ...string) error {
	for i, h := range headers {
		longest := len([]rune(h))
		if i == 0 {
			for _, line := range banner {
				if l := len([]rune(line)); l > longest {
					longest = l
				}
			}
		}
		for _, row := range rows {
			if l := len([]rune(fmt.Sprint(row[i]))); l > longest {
				longest = l
			}
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(longest+2)*1.1); err != nil {
			return err
		}
	}
	return nil
}
