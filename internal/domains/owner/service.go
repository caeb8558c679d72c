package owner

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the business logic contract for owners.
type Service interface {
	// List returns all owners with their stories resolved.
	List(ctx context.Context) ([]OwnerDTO, error)

	Create(ctx context.Context, req AddRequest) (*Owner, error)
	Update(ctx context.Context, id primitive.ObjectID, req EditRequest) (*Owner, error)

	// Delete removes the owner only; referencing stories keep their
	// dangling owner id.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
