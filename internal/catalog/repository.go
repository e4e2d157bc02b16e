package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkrasnov/go_storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// RetrievalError marks the catalog collection as unreachable or returning
// documents that don't match the product schema. Callers surface it to the
// user instead of retrying.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("catalog retrieval failed during %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	EnsureSeeded(ctx context.Context) ([]domain.Product, error)
}
