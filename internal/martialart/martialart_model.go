package martialart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// MartialArt is a directory entry owned by its creating user.
type MartialArt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Origin      string             `bson:"origin"`
	FoundedYear int                `bson:"foundedYear"`
	Location    Location           `bson:"location"`
	Styles      []string           `bson:"styles"`
	ImageURL    string             `bson:"imageUrl"`
	CreatedBy   uint64             `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (m *MartialArt) OwnerID() uint {
	return uint(m.CreatedBy)
}

type CreateMartialArtRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Origin      string   `json:"origin" binding:"required"`
	FoundedYear int      `json:"foundedYear"`
	Location    Location `json:"location" binding:"required"`
	Styles      []string `json:"styles"`
	ImageURL    string   `json:"imageUrl"`
}

// UpdateMartialArtRequest carries optional fields; absent fields are untouched.
type UpdateMartialArtRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Origin      string    `json:"origin"`
	FoundedYear *int      `json:"foundedYear"`
	Location    *Location `json:"location"`
	Styles      []string  `json:"styles"`
	ImageURL    string    `json:"imageUrl"`
}

type MartialArtResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Origin      string    `json:"origin"`
	FoundedYear int       `json:"foundedYear"`
	Location    Location  `json:"location"`
	Styles      []string  `json:"styles"`
	ImageURL    string    `json:"imageUrl"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m *MartialArt) Response() MartialArtResponse {
	styles := m.Styles
	if styles == nil {
		styles = []string{}
	}
	return MartialArtResponse{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		Origin:      m.Origin,
		FoundedYear: m.FoundedYear,
		Location:    m.Location,
		Styles:      styles,
		ImageURL:    m.ImageURL,
		CreatedBy:   uint(m.CreatedBy),
		CreatedAt:   m.CreatedAt,
	}
}
