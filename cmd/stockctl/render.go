package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func statusLabel(status service.StockStatus) string {
	switch status {
	case service.StockOutOfStock:
		return text.FgRed.Sprint("Sem estoque")
	case service.StockLow:
		return text.FgYellow.Sprint("Estoque baixo")
	default:
		return text.FgGreen.Sprint("Normal")
	}
}

func renderProducts(w io.Writer, products []model.Product) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "SKU", "Category", "Qty", "Min", "Price", "Supplier", "Status"})
	for _, p := range products {
		t.AppendRow(table.Row{
			p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.MinQuantity,
			fmt.Sprintf("%.2f", p.Price), p.Supplier, statusLabel(service.Classify(p)),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", len(products)})
	t.Render()
}

func renderUsers(w io.Writer, users []model.User) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Email", "Role", "Department", "Phone", "Status", "Created"})
	for _, u := range users {
		t.AppendRow(table.Row{u.ID, u.Name, u.Email, u.Role, u.Department, u.Phone, u.Status, u.CreatedAt})
	}
	t.Render()
}

func renderStats(w io.Writer, stats service.Stats) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Products", stats.TotalProducts},
		{"Units", stats.TotalUnits},
		{"Low stock", stats.LowStockCount},
		{"Out of stock", stats.OutOfStockCount},
		{"Total value", stats.TotalValue.StringFixed(2)},
	})
	t.Render()
}
