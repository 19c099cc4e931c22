package catalog

import (
	"context"
	"errors"

	"github.com/jacentio/catalog/store"
)

// Repository is the persistence contract the services depend on.
// *store.Table[T] satisfies it.
type Repository[T any] interface {
	Put(ctx context.Context, item T) error
	Get(ctx context.Context, id string) (T, error)
	ScanAll(ctx context.Context) ([]T, error)
	ScanByFilter(ctx context.Context, attr string, value any) ([]T, error)
	Patch(ctx context.Context, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ Repository[Client]  = (*store.Table[Client])(nil)
	_ Repository[Address] = (*store.Table[Address])(nil)
	_ Repository[Product] = (*store.Table[Product])(nil)
)

// fetch loads one entity, mapping a missing key to a NOT_FOUND error.
func fetch[T any](ctx context.Context, repo Repository[T], resource, id string) (T, error) {
	item, err := repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return item, notFound(resource, id)
	}
	if err != nil {
		return item, storeFailure("get", resource, err)
	}
	return item, nil
}

// list loads every entity of one kind.
func list[T any](ctx context.Context, repo Repository[T], resource string) ([]T, error) {
	items, err := repo.ScanAll(ctx)
	if err != nil {
		return nil, storeFailure("list", resource, err)
	}
	return items, nil
}

// apply writes a validated patch to an entity known to exist. A patch with
// nothing writable leaves current untouched.
func apply[T any](ctx context.Context, repo Repository[T], resource, id string, current T, patch map[string]any) (T, error) {
	if len(patch) == 0 {
		return current, nil
	}
	updated, err := repo.Patch(ctx, id, patch)
	switch {
	case errors.Is(err, store.ErrEmptyPatch):
		return current, nil
	case errors.Is(err, store.ErrNotFound):
		// Deleted between the existence check and the write.
		return updated, notFound(resource, id)
	case err != nil:
		return updated, storeFailure("update", resource, err)
	}
	return updated, nil
}

// remove deletes an entity after confirming it exists.
func remove[T any](ctx context.Context, repo Repository[T], resource, id string) error {
	if _, err := fetch(ctx, repo, resource, id); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return storeFailure("delete", resource, err)
	}
	return nil
}
