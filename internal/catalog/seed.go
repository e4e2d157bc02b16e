package catalog

import (
	"time"

	"github.com/dkrasnov/go_storefront/internal/domain"
)

// DefaultProducts returns the placeholder records written to an empty
// collection so the storefront always has something to render.
func DefaultProducts() []domain.Product {
	now := time.Now().UTC()

	return []domain.Product{
		{
			ID:          "dummy-1",
			Name:        "Vintage Camera",
			Description: "A beautiful vintage camera, perfect for collectors.",
			Price:       120.00,
			ImageURL:    "https://picsum.photos/seed/vintage-camera/400/300",
			CreatedAt:   now,
		},
		{
			ID:          "dummy-2",
			Name:        "Classic Vinyl Record",
			Description: "Rare vinyl record from the 70s. Great condition.",
			Price:       25.50,
			ImageURL:    "https://picsum.photos/seed/vinyl-record/400/300",
			CreatedAt:   now,
		},
		{
			ID:          "dummy-3",
			Name:        "Retro Gaming Console",
			Description: "Fully functional retro gaming console with classic games.",
			Price:       80.00,
			ImageURL:    "https://picsum.photos/seed/gaming-console/400/300",
			CreatedAt:   now,
		},
	}
}
