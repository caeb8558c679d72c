package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the data access contract for genres.
type Repository interface {
	Create(ctx context.Context, g *Genre) (*Genre, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Genre, error)
	List(ctx context.Context) ([]Genre, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*Genre, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
