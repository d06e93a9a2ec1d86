package post

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Comment is embedded in its post and dies with it.
type Comment struct {
	ID        string    `bson:"_id"`
	UserID    uint64    `bson:"userId"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Reactions tracks which users reacted. Count always equals len(Users).
type Reactions struct {
	Count int      `bson:"count" json:"count"`
	Users []uint64 `bson:"users" json:"users"`
}

type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       uint64             `bson:"userId"`
	MartialArtID string             `bson:"martialArtId"`
	Content      string             `bson:"content"`
	MediaURL     string             `bson:"mediaUrl,omitempty"`
	MediaType    string             `bson:"mediaType,omitempty"`
	Reactions    Reactions          `bson:"reactions"`
	Comments     []Comment          `bson:"comments"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (p *Post) OwnerID() uint {
	return uint(p.UserID)
}

type CommentResponse struct {
	ID         string    `json:"id"`
	UserID     uint      `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

type PostResponse struct {
	ID         string            `json:"id"`
	UserID     uint              `json:"userId"`
	UserName   string            `json:"userName"`
	UserAvatar string            `json:"userAvatar"`
	Content    string            `json:"content"`
	MediaURL   string            `json:"mediaUrl,omitempty"`
	MediaType  string            `json:"mediaType,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Reactions  Reactions         `json:"reactions"`
	Comments   []CommentResponse `json:"comments"`
}
