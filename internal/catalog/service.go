package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dkrasnov/go_storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// Service fronts the product repository. List calls are deduplicated with
// singleflight and guarded by a circuit breaker so a dead collection fails
// fast instead of piling up timeouts.
type Service struct {
	repo    ProductRepository
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	sfg     singleflight.Group
}

func NewService(repo ProductRepository) *Service {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Service{
		repo:    repo,
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](settings),
	}
}

// List returns the full catalog. An empty collection is seeded with the
// default products and the seeds are returned, so callers always see content.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("list", func() (interface{}, error) {
		return s.breaker.Execute(func() ([]domain.Product, error) {
			products, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}

			if len(products) == 0 {
				log.Printf("catalog empty, seeding default products")
				return s.repo.EnsureSeeded(ctx)
			}

			return products, nil
		})
	})
	if err != nil {
		// Breaker rejections count as retrieval failures too.
		var retrievalErr *RetrievalError
		if !errors.As(err, &retrievalErr) {
			err = &RetrievalError{Op: "list", Err: err}
		}
		return nil, err
	}

	return v.([]domain.Product), nil
}

// GetByID returns nil without an error when no product matches.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}
