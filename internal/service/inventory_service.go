package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

// chartLabelWidth is the number of characters kept in a chart label.
const chartLabelWidth = 15

// StockStatus classifies a product's stock health.
type StockStatus string

const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low_stock"
	StockNormal     StockStatus = "normal"
)

// Stats aggregates a product collection.
type Stats struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalUnits      int64           `json:"totalUnits"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	TotalValue      decimal.Decimal `json:"totalValue"`
}

// ChartPoint is one bar of the stock overview chart.
type ChartPoint struct {
	Label       string `json:"label"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	IsLow       bool   `json:"isLow"`
}

// ProductStatus pairs a product with its classification.
type ProductStatus struct {
	Product model.Product `json:"product"`
	Status  StockStatus   `json:"status"`
}

// Classify reports OutOfStock for zero quantity, LowStock below the
// threshold and Normal otherwise. Zero quantity wins over the threshold.
func Classify(p model.Product) StockStatus {
	switch {
	case p.IsOutOfStock():
		return StockOutOfStock
	case p.IsLowStock():
		return StockLow
	default:
		return StockNormal
	}
}

// ComputeStats sums a product snapshot. LowStockCount counts every product
// under its threshold, including out of stock ones.
func ComputeStats(products []model.Product) Stats {
	stats := Stats{TotalValue: decimal.Zero}
	for _, p := range products {
		stats.TotalProducts++
		stats.TotalUnits += int64(p.Quantity)
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		if p.IsOutOfStock() {
			stats.OutOfStockCount++
		}
		line := decimal.NewFromInt(int64(p.Quantity)).Mul(decimal.NewFromFloat(p.Price))
		stats.TotalValue = stats.TotalValue.Add(line)
	}
	stats.TotalValue = stats.TotalValue.Round(2)
	return stats
}

// BuildChartSeries returns one point per product in input order.
func BuildChartSeries(products []model.Product) []ChartPoint {
	points := make([]ChartPoint, 0, len(products))
	for _, p := range products {
		points = append(points, ChartPoint{
			Label:       truncateLabel(p.Name, chartLabelWidth),
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			IsLow:       Classify(p) == StockLow,
		})
	}
	return points
}

func truncateLabel(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "..."
}

// InventoryService derives dashboard values from a fresh product snapshot.
type InventoryService interface {
	Stats(ctx context.Context) (Stats, error)
	Chart(ctx context.Context) ([]ChartPoint, error)
	Attention(ctx context.Context) ([]ProductStatus, error)
}

type inventoryService struct {
	products repository.ProductRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(products repository.ProductRepository) InventoryService {
	return &inventoryService{products: products}
}

func (s *inventoryService) snapshot(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	return products, nil
}

// Stats computes aggregate statistics over the current catalog.
func (s *inventoryService) Stats(ctx context.Context) (Stats, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(products), nil
}

// Chart builds the chart series for the current catalog.
func (s *inventoryService) Chart(ctx context.Context) ([]ChartPoint, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildChartSeries(products), nil
}

// Attention lists the products that are low or out of stock.
func (s *inventoryService) Attention(ctx context.Context) ([]ProductStatus, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductStatus, 0)
	for _, p := range products {
		if status := Classify(p); status != StockNormal {
			out = append(out, ProductStatus{Product: p, Status: status})
		}
	}
	return out, nil
}
