package poll

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Option is embedded in its poll. Votes always equals len(Voters).
type Option struct {
	ID     primitive.ObjectID `bson:"_id"`
	Text   string             `bson:"text"`
	Votes  int                `bson:"votes"`
	Voters []uint64           `bson:"voters"`
}

type Poll struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Question     string             `bson:"question"`
	Options      []Option           `bson:"options"`
	CreatedBy    uint64             `bson:"createdBy"`
	MartialArtID string             `bson:"martialArtId"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (p *Poll) OwnerID() uint {
	return uint(p.CreatedBy)
}

type CreatePollRequest struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	MartialArtID string   `json:"martialArtId" binding:"required"`
}

type VoteRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// OptionResponse is the tally projection: raw votes plus the derived
// percentage of all votes cast.
type OptionResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Votes      int      `json:"votes"`
	Percentage float64  `json:"percentage"`
	Voters     []uint64 `json:"voters"`
}

type PollResponse struct {
	ID            string           `json:"id"`
	Question      string           `json:"question"`
	Options       []OptionResponse `json:"options"`
	CreatedBy     uint             `json:"createdBy"`
	CreatorName   string           `json:"creatorName"`
	CreatorAvatar string           `json:"creatorAvatar"`
	MartialArtID  string           `json:"martialArtId"`
	CreatedAt     time.Time        `json:"createdAt"`
	TotalVotes    int              `json:"totalVotes"`
}
