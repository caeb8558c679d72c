package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyshare-backend/internal/domains/genre"
	"storyshare-backend/internal/infrastructure/database"
)

type mongoGenreRepository struct {
	db *database.MongoDB
}

func NewMongoGenreRepository(db *database.MongoDB) genre.Repository {
	return &mongoGenreRepository{db: db}
}

func (r *mongoGenreRepository) genres() *mongo.Collection {
	return r.db.Collection(database.CollectionGenres)
}

func (r *mongoGenreRepository) Create(ctx context.Context, g *genre.Genre) (*genre.Genre, error) {
	res, err := r.genres().InsertOne(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("insert genre: %w", err)
	}

	g.ID = res.InsertedID.(primitive.ObjectID)
	return g, nil
}

func (r *mongoGenreRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	var g genre.Genre
	err := r.genres().FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &g, nil
}

func (r *mongoGenreRepository) List(ctx context.Context) ([]genre.Genre, error) {
	cursor, err := r.genres().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer cursor.Close(ctx)

	genres := []genre.Genre{}
	if err := cursor.All(ctx, &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}

	return genres, nil
}

func (r *mongoGenreRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*genre.Genre, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var g genre.Genre
	err := r.genres().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}}, opts).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}

	return &g, nil
}

func (r *mongoGenreRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.genres().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if res.DeletedCount == 0 {
		return genre.ErrGenreNotFound
	}

	return nil
}
