package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/infrastructure/database"
	"storyshare-backend/internal/shared"
)

// mongoUserRepository implements user.Repository against the users
// collection.
type mongoUserRepository struct {
	db *database.MongoDB
}

func NewMongoUserRepository(db *database.MongoDB) user.Repository {
	return &mongoUserRepository{db: db}
}

func (r *mongoUserRepository) users() *mongo.Collection {
	return r.db.Collection(database.CollectionUsers)
}

func (r *mongoUserRepository) stories() *mongo.Collection {
	return r.db.Collection(database.CollectionStories)
}

// ========================================
// BASIC CRUD
// ========================================

func (r *mongoUserRepository) Create(ctx context.Context, u *user.User) error {
	// Empty slices rather than nulls, so array updates behave.
	if u.Stories == nil {
		u.Stories = []primitive.ObjectID{}
	}
	if u.Likes == nil {
		u.Likes = []primitive.ObjectID{}
	}

	res, err := r.users().InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	var u user.User
	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &u, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

func (r *mongoUserRepository) FindAdminByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.users().FindOne(ctx, bson.M{"email": email, "role": user.RoleAdmin}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}

	return &u, nil
}

func (r *mongoUserRepository) List(ctx context.Context) ([]user.User, error) {
	cursor, err := r.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return users, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ========================================
// FIELD UPDATES
// ========================================

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := r.users().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, firstName, lastName, avatar, passwordHash string) (*user.User, error) {
	set := bson.M{
		"firstName": firstName,
		"lastName":  lastName,
		"avatar":    avatar,
	}
	// The hash only reaches the update when a new password was supplied.
	if passwordHash != "" {
		set["password"] = passwordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u user.User
	err := r.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &u, nil
}

// ========================================
// STORY CROSS-REFERENCES
// ========================================

func (r *mongoUserRepository) PushStory(ctx context.Context, userID, storyID primitive.ObjectID) error {
	_, err := r.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"stories": storyID}},
	)
	if err != nil {
		return fmt.Errorf("push story onto user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) PullStory(ctx context.Context, userID, storyID primitive.ObjectID) error {
	_, err := r.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"stories": storyID}},
	)
	if err != nil {
		return fmt.Errorf("pull story from user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) PushLike(ctx context.Context, userID, storyID primitive.ObjectID) error {
	_, err := r.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"likes": storyID}},
	)
	if err != nil {
		return fmt.Errorf("push like onto user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) PullLike(ctx context.Context, userID, storyID primitive.ObjectID) error {
	_, err := r.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"likes": storyID}},
	)
	if err != nil {
		return fmt.Errorf("pull like from user: %w", err)
	}
	return nil
}

// ========================================
// RESOLUTION
// ========================================

func (r *mongoUserRepository) ResolveStories(ctx context.Context, ids []primitive.ObjectID) ([]shared.StorySummary, error) {
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
