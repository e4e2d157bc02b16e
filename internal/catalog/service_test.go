package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dkrasnov/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	products  []domain.Product
	listErr   error
	getErr    error
	seedCalls int
}

func (m *mockRepository) List(context.Context) ([]domain.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (domain.Product, error) {
	if m.getErr != nil {
		return domain.Product{}, m.getErr
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (m *mockRepository) EnsureSeeded(context.Context) ([]domain.Product, error) {
	m.seedCalls++
	m.products = DefaultProducts()
	return m.products, nil
}

func TestService_List(t *testing.T) {
	repo := &mockRepository{products: []domain.Product{
		{ID: "p1", Name: "Lamp", Price: 12.00},
	}}
	service := NewService(repo)

	products, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Zero(t, repo.seedCalls, "non-empty catalog must not be seeded")
}

func TestService_List_SeedsEmptyCollection(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	products, err := service.List(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, 1, repo.seedCalls)
	assert.Equal(t, "dummy-1", products[0].ID)
	assert.Equal(t, "Vintage Camera", products[0].Name)
	assert.InEpsilon(t, 120.00, products[0].Price, 1e-9)
}

func TestService_List_RetrievalError(t *testing.T) {
	repo := &mockRepository{
		listErr: &RetrievalError{Op: "list", Err: errors.New("server selection timeout")},
	}
	service := NewService(repo)

	_, err := service.List(context.Background())

	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}

func TestService_List_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	repo := &mockRepository{
		listErr: &RetrievalError{Op: "list", Err: errors.New("down")},
	}
	service := NewService(repo)

	for i := 0; i < 6; i++ {
		_, err := service.List(context.Background())
		require.Error(t, err)
	}

	// The breaker is open now; the failure still surfaces as a retrieval error
	repo.listErr = nil
	repo.products = []domain.Product{{ID: "p1", Name: "Lamp", Price: 1}}

	_, err := service.List(context.Background())
	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}

func TestService_GetByID(t *testing.T) {
	repo := &mockRepository{products: []domain.Product{
		{ID: "p1", Name: "Lamp", Price: 12.00},
	}}
	service := NewService(repo)

	product, err := service.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Lamp", product.Name)
}

func TestService_GetByID_NotFoundIsNil(t *testing.T) {
	service := NewService(&mockRepository{})

	product, err := service.GetByID(context.Background(), "missing")
	require.NoError(t, err, "not-found is not an error")
	assert.Nil(t, product)
}

func TestService_GetByID_RetrievalError(t *testing.T) {
	repo := &mockRepository{
		getErr: &RetrievalError{Op: "get", Err: errors.New("down")},
	}
	service := NewService(repo)

	_, err := service.GetByID(context.Background(), "p1")

	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}
