package martialart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists martial-art documents.
type Repository interface {
	Insert(ctx context.Context, art *MartialArt) error
	FindAll(ctx context.Context) ([]*MartialArt, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*MartialArt, error)
	Replace(ctx context.Context, art *MartialArt) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("martial_arts")}
}

func (r *mongoRepository) Insert(ctx context.Context, art *MartialArt) error {
	_, err := r.collection.InsertOne(ctx, art)
	return err
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]*MartialArt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var arts []*MartialArt
	if err := cursor.All(ctx, &arts); err != nil {
		return nil, err
	}
	return arts, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*MartialArt, error) {
	var art MartialArt
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&art); err != nil {
		return nil, err
	}
	return &art, nil
}

func (r *mongoRepository) Replace(ctx context.Context, art *MartialArt) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": art.ID}, art)
	return err
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
