package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dkrasnov/go_storefront/internal/catalog"
	"github.com/dkrasnov/go_storefront/internal/domain"
	"github.com/dkrasnov/go_storefront/internal/listing"
	"github.com/go-chi/chi/v5"
)

// CatalogService defines what the product handlers need from the catalog.
// Consumers define this interface, not the service implementation.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

// List serves the catalog with optional ?q= substring filtering and
// ?sort= ordering applied on top of the fetched products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}

	products = listing.Filter(products, r.URL.Query().Get("q"))
	products = listing.Sort(products, listing.SortKey(r.URL.Query().Get("sort")))

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: out})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.catalog.GetByID(ctx, id)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

func handleCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("catalog error (request %s): %v", getRequestID(r.Context()), err)

	var retrievalErr *catalog.RetrievalError
	if errors.As(err, &retrievalErr) {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "catalog is unavailable")
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
