package post

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists post documents including their embedded comments
// and reaction set.
type Repository interface {
	Insert(ctx context.Context, post *Post) error
	FindByMartialArt(ctx context.Context, martialArtID string) ([]*Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Post, error)
	Replace(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("posts")}
}

func (r *mongoRepository) Insert(ctx context.Context, post *Post) error {
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

func (r *mongoRepository) FindByMartialArt(ctx context.Context, martialArtID string) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"martialArtId": martialArtID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoRepository) Replace(ctx context.Context, post *Post) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	return err
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
