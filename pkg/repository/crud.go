package repository

import "context"

// Crud is the uniform persistence contract every entity repository in this
// codebase satisfies, independent of the backing store. The same behavioral
// rules bind every implementation:
//
//   - Save assigns the identity on insert and returns the persisted entity.
//   - FindByID reports absence through the bool, never through the error.
//     A missing row is a first-class result, not a failure.
//   - FindAll returns an empty (non-nil) slice when the table is empty.
//   - Delete of a key that does not exist is a no-op.
//   - ExistsByID agrees with FindByID's found flag for the same key at the
//     same point in time.
//
// Implementations own no in-process state; every call goes to the store.
type Crud[T any, ID comparable] interface {
	Save(ctx context.Context, entity T) (T, error)
	FindByID(ctx context.Context, id ID) (T, bool, error)
	FindAll(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, entity T) error
	ExistsByID(ctx context.Context, id ID) (bool, error)
}
