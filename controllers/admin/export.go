package adminController

import (
	"io"
	"strconv"
	"strings"

	"fiber-mongo-storefront/models"

	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeProductsWorkbook(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	addHeader(sheet, "ID", "Name", "Category", "Price", "Description", "Image")
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID.Hex())
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Image)
	}

	return file.Write(w)
}

func writeOrdersWorkbook(w io.Writer, orders []models.AdminOrderView) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	addHeader(sheet, "ID", "Reference", "Date", "Status", "Customer", "Email", "Location", "Items", "Total")
	for _, o := range orders {
		items := make([]string, 0, len(o.Products))
		for _, line := range o.Products {
			items = append(items, line.Name+" x"+strconv.Itoa(line.Quantity))
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID.Hex())
		row.AddCell().SetValue(o.Reference)
		row.AddCell().SetValue(o.Date.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.User.Name)
		row.AddCell().SetValue(o.User.Email)
		row.AddCell().SetValue(o.Location)
		row.AddCell().SetValue(strings.Join(items, ", "))
		row.AddCell().SetValue(o.TotalAmount.StringFixed(2))
	}

	return file.Write(w)
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}
