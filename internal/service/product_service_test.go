package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func newProductService(t *testing.T) (*productService, repository.ProductRepository) {
	t.Helper()
	repo := repository.NewProductRepository(kv.NewMemoryStore(), &repository.SequenceGenerator{Prefix: "p-"})
	svc := NewProductService(repo).(*productService)
	svc.now = fixedClock
	return svc, repo
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	tests := []struct {
		name        string
		input       model.Product
		wantUpdated string
	}{
		{
			name:        "keeps provided date",
			input:       model.Product{Name: "Test", Quantity: 0, MinQuantity: 5, LastUpdated: "2025-01-01"},
			wantUpdated: "2025-01-01",
		},
		{
			name:        "defaults date to today",
			input:       model.Product{Name: "Cabo HDMI", Quantity: 10},
			wantUpdated: "2026-03-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.CreateProduct(ctx, tt.input)
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, tt.wantUpdated, created.LastUpdated)
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	created, err := svc.CreateProduct(ctx, model.Product{Name: "Monitor", Quantity: 45, MinQuantity: 10, LastUpdated: "2025-01-01"})
	require.NoError(t, err)

	created.Quantity = 2
	created.LastUpdated = ""
	updated, err := svc.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "2026-03-14", updated.LastUpdated)

	_, err = svc.UpdateProduct(ctx, model.Product{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_ListProductsWithQuery(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockRepo.On("List", mock.Anything).Return(BaselineProducts(), nil)
	svc := NewProductService(mockRepo)

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	filtered, err := svc.ListProducts(ctx, "periféricos")
	require.NoError(t, err)
	assert.Len(t, filtered, 3)

	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockRepo.On("Remove", mock.Anything, "42").Return(nil).Twice()
	svc := NewProductService(mockRepo)

	assert.NoError(t, svc.DeleteProduct(ctx, "42"))
	assert.NoError(t, svc.DeleteProduct(ctx, "42"))
	mockRepo.AssertExpectations(t)
}
