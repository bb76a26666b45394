package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
)

func productSKUs(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.SKU)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := BaselineProducts()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term keeps all", term: "", want: productSKUs(products)},
		{name: "blank term keeps all", term: "   ", want: productSKUs(products)},
		{name: "name ignores case", term: "LOGITECH", want: []string{"MS-LOG-002"}},
		{name: "sku substring", term: "rgb-003", want: []string{"KB-RGB-003"}},
		{name: "category with accents", term: "eletrÔnicos", want: []string{"NB-DELL-001", "MN-LG-004"}},
		{name: "no match", term: "impressora", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productSKUs(FilterProducts(products, tt.term)))
		})
	}
}

func TestFilterUsers(t *testing.T) {
	users := BaselineUsers()

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "department", term: "estoque", want: 2},
		{name: "email", term: "PEDRO.SANTOS@", want: 1},
		{name: "role", term: "técnico", want: 1},
		{name: "no match", term: "financeiro", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterUsers(users, tt.term), tt.want)
		})
	}
}
