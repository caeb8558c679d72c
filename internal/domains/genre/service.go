package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the business logic contract for genres.
type Service interface {
	List(ctx context.Context) ([]Genre, error)
	Create(ctx context.Context, req AddRequest) (*Genre, error)
	Update(ctx context.Context, id primitive.ObjectID, req EditRequest) (*Genre, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
