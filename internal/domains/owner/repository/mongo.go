package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/infrastructure/database"
	"storyshare-backend/internal/shared"
)

type mongoOwnerRepository struct {
	db *database.MongoDB
}

func NewMongoOwnerRepository(db *database.MongoDB) owner.Repository {
	return &mongoOwnerRepository{db: db}
}

func (r *mongoOwnerRepository) owners() *mongo.Collection {
	return r.db.Collection(database.CollectionOwners)
}

func (r *mongoOwnerRepository) stories() *mongo.Collection {
	return r.db.Collection(database.CollectionStories)
}

func (r *mongoOwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	if o.Stories == nil {
		o.Stories = []primitive.ObjectID{}
	}

	res, err := r.owners().InsertOne(ctx, o)
	if err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}

	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoOwnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*owner.Owner, error) {
	var o owner.Owner
	err := r.owners().FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("find owner by id: %w", err)
	}

	return &o, nil
}

func (r *mongoOwnerRepository) List(ctx context.Context) ([]owner.Owner, error) {
	cursor, err := r.owners().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer cursor.Close(ctx)

	var owners []owner.Owner
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, fmt.Errorf("decode owners: %w", err)
	}

	return owners, nil
}

func (r *mongoOwnerRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*owner.Owner, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o owner.Owner
	err := r.owners().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("update owner: %w", err)
	}

	return &o, nil
}

func (r *mongoOwnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.owners().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	if res.DeletedCount == 0 {
		return owner.ErrOwnerNotFound
	}

	return nil
}

func (r *mongoOwnerRepository) PushStory(ctx context.Context, ownerID, storyID primitive.ObjectID) error {
	_, err := r.owners().UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$push": bson.M{"stories": storyID}},
	)
	if err != nil {
		return fmt.Errorf("push story onto owner: %w", err)
	}
	return nil
}

func (r *mongoOwnerRepository) PullStory(ctx context.Context, ownerID, storyID primitive.ObjectID) error {
	_, err := r.owners().UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$pull": bson.M{"stories": storyID}},
	)
	if err != nil {
		return fmt.Errorf("pull story from owner: %w", err)
	}
	return nil
}

func (r *mongoOwnerRepository) ResolveStories(ctx context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error) {
	if len(ids) == 0 {
		return []shared.StorySummary{}, nil
	}

	cursor, err := r.stories().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("resolve stories: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []shared.StorySummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}

	return summaries, nil
}
