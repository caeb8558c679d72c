package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyshare-backend/internal/domains/story"
	"storyshare-backend/internal/infrastructure/database"
)

type mongoStoryRepository struct {
	db *database.MongoDB
}

func NewMongoStoryRepository(db *database.MongoDB) story.Repository {
	return &mongoStoryRepository{db: db}
}

func (r *mongoStoryRepository) stories() *mongo.Collection {
	return r.db.Collection(database.CollectionStories)
}

func (r *mongoStoryRepository) comments() *mongo.Collection {
	return r.db.Collection(database.CollectionComments)
}

// ========================================
// STORIES
// ========================================

func (r *mongoStoryRepository) Create(ctx context.Context, s *story.Story) error {
	if s.Ratings == nil {
		s.Ratings = []story.Rating{}
	}
	if s.Comments == nil {
		s.Comments = []primitive.ObjectID{}
	}
	if s.Likes == nil {
		s.Likes = []primitive.ObjectID{}
	}

	res, err := r.stories().InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}

	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoStoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*story.Story, error) {
	var s story.Story
	err := r.stories().FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrStoryNotFound
		}
		return nil, fmt.Errorf("find story by id: %w", err)
	}

	return &s, nil
}

func (r *mongoStoryRepository) List(ctx context.Context) ([]story.Story, error) {
	cursor, err := r.stories().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer cursor.Close(ctx)

	stories := []story.Story{}
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}

	return stories, nil
}

func (r *mongoStoryRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (*story.Story, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s story.Story
	err := r.stories().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrStoryNotFound
		}
		return nil, fmt.Errorf("update story: %w", err)
	}

	return &s, nil
}

func (r *mongoStoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*story.Story, error) {
	var s story.Story
	err := r.stories().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrStoryNotFound
		}
		return nil, fmt.Errorf("delete story: %w", err)
	}

	return &s, nil
}

// ========================================
// RATINGS AND LIKES
// ========================================

func (r *mongoStoryRepository) PushRating(ctx context.Context, storyID primitive.ObjectID, rating story.Rating) (*story.Story, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s story.Story
	err := r.stories().FindOneAndUpdate(ctx,
		bson.M{"_id": storyID},
		bson.M{"$push": bson.M{"ratings": rating}},
		opts,
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrStoryNotFound
		}
		return nil, fmt.Errorf("push rating: %w", err)
	}

	return &s, nil
}

func (r *mongoStoryRepository) SetRatingAverage(ctx context.Context, storyID primitive.ObjectID, avg float64) error {
	_, err := r.stories().UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$set": bson.M{"ratingAverage": avg}},
	)
	if err != nil {
		return fmt.Errorf("set rating average: %w", err)
	}
	return nil
}

func (r *mongoStoryRepository) PushLike(ctx context.Context, storyID, userID primitive.ObjectID) error {
	_, err := r.stories().UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$push": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("push like onto story: %w", err)
	}
	return nil
}

func (r *mongoStoryRepository) PullLike(ctx context.Context, storyID, userID primitive.ObjectID) error {
	_, err := r.stories().UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("pull like from story: %w", err)
	}
	return nil
}

// ========================================
// COMMENTS
// ========================================

func (r *mongoStoryRepository) CreateComment(ctx context.Context, c *story.Comment) error {
	res, err := r.comments().InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoStoryRepository) FindCommentByID(ctx context.Context, id primitive.ObjectID) (*story.Comment, error) {
	var c story.Comment
	err := r.comments().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}

	return &c, nil
}

func (r *mongoStoryRepository) ListCommentsByStory(ctx context.Context, storyID primitive.ObjectID) ([]story.Comment, error) {
	return r.listComments(ctx, bson.M{"storyId": storyID})
}

func (r *mongoStoryRepository) ListComments(ctx context.Context) ([]story.Comment, error) {
	return r.listComments(ctx, bson.M{})
}

func (r *mongoStoryRepository) listComments(ctx context.Context, filter bson.M) ([]story.Comment, error) {
	cursor, err := r.comments().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []story.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	return comments, nil
}

func (r *mongoStoryRepository) UpdateCommentText(ctx context.Context, id primitive.ObjectID, text string) (*story.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c story.Comment
	err := r.comments().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"comment": text}},
		opts,
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, story.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return &c, nil
}

func (r *mongoStoryRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.comments().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return story.ErrCommentNotFound
	}

	return nil
}

func (r *mongoStoryRepository) DeleteCommentsByStory(ctx context.Context, storyID primitive.ObjectID) (int64, error) {
	res, err := r.comments().DeleteMany(ctx, bson.M{"storyId": storyID})
	if err != nil {
		return 0, fmt.Errorf("delete comments by story: %w", err)
	}

	return res.DeletedCount, nil
}

func (r *mongoStoryRepository) PushComment(ctx context.Context, storyID, commentID primitive.ObjectID) error {
	_, err := r.stories().UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$push": bson.M{"comments": commentID}},
	)
	if err != nil {
		return fmt.Errorf("push comment onto story: %w", err)
	}
	return nil
}

func (r *mongoStoryRepository) PullComment(ctx context.Context, storyID, commentID primitive.ObjectID) error {
	_, err := r.stories().UpdateOne(ctx,
		bson.M{"_id": storyID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	if err != nil {
		return fmt.Errorf("pull comment from story: %w", err)
	}
	return nil
}
