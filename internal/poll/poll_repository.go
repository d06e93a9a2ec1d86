package poll

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVoteNotApplied means the conditional vote update matched no document:
// the poll or option is missing, or the user already voted. The caller
// disambiguates with a follow-up read.
var ErrVoteNotApplied = errors.New("vote not applied")

// Repository persists poll documents.
type Repository interface {
	Insert(ctx context.Context, poll *Poll) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Poll, error)
	FindByMartialArt(ctx context.Context, martialArtID string) ([]*Poll, error)
	// AddVote atomically appends the voter to the option and increments its
	// count, but only if the voter is absent from every option of the poll.
	AddVote(ctx context.Context, pollID, optionID primitive.ObjectID, userID uint64) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("polls")}
}

func (r *mongoRepository) Insert(ctx context.Context, poll *Poll) error {
	_, err := r.collection.InsertOne(ctx, poll)
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Poll, error) {
	var poll Poll
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&poll); err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *mongoRepository) FindByMartialArt(ctx context.Context, martialArtID string) ([]*Poll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"martialArtId": martialArtID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var polls []*Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// AddVote is a single conditional update: the filter requires the poll, the
// target option, and the voter's absence from every option's voters array,
// so concurrent duplicate votes by the same user cannot both commit.
func (r *mongoRepository) AddVote(ctx context.Context, pollID, optionID primitive.ObjectID, userID uint64) error {
	filter := bson.M{
		"_id":         pollID,
		"options._id": optionID,
		"options":     bson.M{"$not": bson.M{"$elemMatch": bson.M{"voters": userID}}},
	}
	update := bson.M{
		"$inc":  bson.M{"options.$[opt].votes": 1},
		"$push": bson.M{"options.$[opt].voters": userID},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"opt._id": optionID}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrVoteNotApplied
	}
	return nil
}
