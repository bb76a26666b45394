package repository

import (
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
)

// ProductKind is the key prefix of the product collection.
const ProductKind = "product"

// ProductRepository defines product persistence operations.
type ProductRepository = Repository[model.Product]

// NewProductRepository builds a key-value backed product repository.
func NewProductRepository(store kv.Store, ids IDGenerator) ProductRepository {
	return newKVRepository[model.Product](store, ProductKind, ids)
}
