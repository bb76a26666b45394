package repository

import (
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
)

// UserKind is the key prefix of the user collection.
const UserKind = "user"

// UserRepository defines user persistence operations.
type UserRepository = Repository[model.User]

// NewUserRepository builds a key-value backed user repository.
func NewUserRepository(store kv.Store, ids IDGenerator) UserRepository {
	return newKVRepository[model.User](store, UserKind, ids)
}
