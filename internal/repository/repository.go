package repository

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
)

// Entity is a record stored under "<kind>:<id>".
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}

// Repository maps CRUD calls for one entity kind onto key-value operations.
type Repository[T Entity[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Put(ctx context.Context, entity T) error
	Remove(ctx context.Context, id string) error
}

type kvRepository[T Entity[T]] struct {
	store kv.Store
	kind  string
	ids   IDGenerator
}

func newKVRepository[T Entity[T]](store kv.Store, kind string, ids IDGenerator) *kvRepository[T] {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &kvRepository[T]{store: store, kind: kind, ids: ids}
}

func (r *kvRepository[T]) key(id string) string {
	return r.kind + ":" + id
}

// List returns every record of this kind. Order is whatever the store yields.
func (r *kvRepository[T]) List(ctx context.Context) ([]T, error) {
	vals, err := r.store.ScanPrefix(ctx, r.kind+":")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		var entity T
		if err := json.Unmarshal(v, &entity); err != nil {
			return nil, apperrors.NewStorageError("decode", r.kind+":*", err)
		}
		out = append(out, entity)
	}
	return out, nil
}

// Get loads one record or returns ErrNotFound.
func (r *kvRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var entity T
	if id == "" {
		return entity, apperrors.Validationf("%s id is required", r.kind)
	}
	v, found, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		return entity, fmt.Errorf("get %s: %w", r.kind, err)
	}
	if !found {
		return entity, fmt.Errorf("%s %s: %w", r.kind, id, apperrors.ErrNotFound)
	}
	if err := json.Unmarshal(v, &entity); err != nil {
		return entity, apperrors.NewStorageError("decode", r.key(id), err)
	}
	return entity, nil
}

// Create assigns a fresh id, discarding any id carried by draft.
func (r *kvRepository[T]) Create(ctx context.Context, draft T) (T, error) {
	entity := draft.WithEntityID(r.ids.Next())
	if err := r.write(ctx, entity); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", r.kind, err)
	}
	return entity, nil
}

// Update replaces an existing record. Unknown ids are rejected with
// ErrNotFound rather than created.
func (r *kvRepository[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	id := entity.EntityID()
	if id == "" {
		return zero, apperrors.Validationf("%s id is required", r.kind)
	}
	_, found, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.kind, err)
	}
	if !found {
		return zero, fmt.Errorf("%s %s: %w", r.kind, id, apperrors.ErrNotFound)
	}
	if err := r.write(ctx, entity); err != nil {
		return zero, fmt.Errorf("update %s: %w", r.kind, err)
	}
	return entity, nil
}

// Put writes entity under its own id whether or not it exists.
func (r *kvRepository[T]) Put(ctx context.Context, entity T) error {
	if entity.EntityID() == "" {
		return apperrors.Validationf("%s id is required", r.kind)
	}
	if err := r.write(ctx, entity); err != nil {
		return fmt.Errorf("put %s: %w", r.kind, err)
	}
	return nil
}

// Remove deletes a record; removing an unknown id succeeds.
func (r *kvRepository[T]) Remove(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validationf("%s id is required", r.kind)
	}
	if err := r.store.Delete(ctx, r.key(id)); err != nil {
		return fmt.Errorf("remove %s: %w", r.kind, err)
	}
	return nil
}

func (r *kvRepository[T]) write(ctx context.Context, entity T) error {
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.kind, err)
	}
	return r.store.Set(ctx, r.key(entity.EntityID()), payload)
}
