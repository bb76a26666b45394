package service

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
)

// matcher does case-insensitive substring tests. A cases.Caser is stateful,
// so each filter call builds its own.
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(term string) *matcher {
	fold := cases.Fold()
	return &matcher{fold: fold, needle: fold.String(strings.TrimSpace(term))}
}

func (m *matcher) any(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.needle) {
			return true
		}
	}
	return false
}

// FilterProducts keeps products whose name, SKU or category contains term,
// ignoring case. An empty term keeps everything.
func FilterProducts(products []model.Product, term string) []model.Product {
	m := newMatcher(term)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if m.any(p.Name, p.SKU, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterUsers keeps users whose name, email, role or department contains
// term, ignoring case.
func FilterUsers(users []model.User, term string) []model.User {
	m := newMatcher(term)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if m.any(u.Name, u.Email, u.Role, u.Department) {
			out = append(out, u)
		}
	}
	return out
}
