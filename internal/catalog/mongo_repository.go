package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkrasnov/go_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) ProductRepository {
	return &mongoRepository{
		collection: db.Collection("products"),
	}
}

// productDoc is the wire shape of a catalog document. Decoding goes through
// toDomain so a malformed document surfaces a RetrievalError instead of
// leaking into the rest of the process.
type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	ImageURL    string    `bson:"image_url"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d productDoc) toDomain() (domain.Product, error) {
	if d.ID == "" {
		return domain.Product{}, errors.New("document missing _id")
	}
	if d.Name == "" {
		return domain.Product{}, fmt.Errorf("product %q missing name", d.ID)
	}
	if d.Price < 0 {
		return domain.Product{}, fmt.Errorf("product %q has negative price %v", d.ID, d.Price)
	}

	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
	}, nil
}

func fromDomain(p domain.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *mongoRepository) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &RetrievalError{Op: "list", Err: err}
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &RetrievalError{Op: "list", Err: fmt.Errorf("decode document: %w", err)}
		}

		product, err := doc.toDomain()
		if err != nil {
			return nil, &RetrievalError{Op: "list", Err: err}
		}
		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, &RetrievalError{Op: "list", Err: err}
	}

	return products, nil
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	var doc productDoc

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, &RetrievalError{Op: "get", Err: err}
	}

	product, err := doc.toDomain()
	if err != nil {
		return domain.Product{}, &RetrievalError{Op: "get", Err: err}
	}

	return product, nil
}

// EnsureSeeded upserts the fixed placeholder products keyed by their ids,
// so seeding an already-seeded collection is a no-op apart from the writes.
func (m *mongoRepository) EnsureSeeded(ctx context.Context) ([]domain.Product, error) {
	seeds := DefaultProducts()

	for _, product := range seeds {
		filter := bson.M{"_id": product.ID}
		opts := options.Replace().SetUpsert(true)

		if _, err := m.collection.ReplaceOne(ctx, filter, fromDomain(product), opts); err != nil {
			return nil, &RetrievalError{Op: "seed", Err: fmt.Errorf("upsert %s: %w", product.ID, err)}
		}
	}

	return seeds, nil
}
