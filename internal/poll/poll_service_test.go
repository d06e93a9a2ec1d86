package poll

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"martial-service/internal/auth"
	"martial-service/pkg/apperrors"
)

// fakePollRepo is an in-memory Repository whose AddVote keeps the same
// all-or-nothing semantics as the Mongo conditional update.
type fakePollRepo struct {
	mu    sync.Mutex
	polls map[primitive.ObjectID]*Poll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[primitive.ObjectID]*Poll)}
}

func (r *fakePollRepo) Insert(_ context.Context, poll *Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls[poll.ID] = poll
	return nil
}

func (r *fakePollRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return poll, nil
}

func (r *fakePollRepo) FindByMartialArt(_ context.Context, martialArtID string) ([]*Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Poll
	for _, p := range r.polls {
		if p.MartialArtID == martialArtID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePollRepo) AddVote(_ context.Context, pollID, optionID primitive.ObjectID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[pollID]
	if !ok {
		return ErrVoteNotApplied
	}
	for _, opt := range poll.Options {
		for _, voter := range opt.Voters {
			if voter == userID {
				return ErrVoteNotApplied
			}
		}
	}
	for i := range poll.Options {
		if poll.Options[i].ID == optionID {
			poll.Options[i].Voters = append(poll.Options[i].Voters, userID)
			poll.Options[i].Votes++
			return nil
		}
	}
	return ErrVoteNotApplied
}

type fakeUserDirectory struct {
	users map[uint]*auth.User
}

func (d *fakeUserDirectory) FindByID(_ context.Context, id uint) (*auth.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func newTestService() (*Service, *fakePollRepo) {
	repo := newFakePollRepo()
	creator := &auth.User{Name: "Ana", Avatar: "http://img/ana.png"}
	creator.ID = 1
	dir := &fakeUserDirectory{users: map[uint]*auth.User{1: creator}}
	return NewService(repo, dir), repo
}

func optionIDOf(t *testing.T, poll *PollResponse, text string) string {
	t.Helper()
	for _, opt := range poll.Options {
		if opt.Text == text {
			return opt.ID
		}
	}
	t.Fatalf("option %q not found", text)
	return ""
}

func TestCreatePoll(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	poll, err := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, "Best style?", poll.Question)
	assert.Len(t, poll.Options, 2)
	assert.Equal(t, 0, poll.TotalVotes)
	assert.Equal(t, "Ana", poll.CreatorName)
	for _, opt := range poll.Options {
		assert.Equal(t, 0, opt.Votes)
		assert.Empty(t, opt.Voters)
		assert.Equal(t, 0.0, opt.Percentage)
	}
}

func TestCreatePollValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		question string
		options  []string
	}{
		{"blank question", "   ", []string{"a", "b"}},
		{"single option", "Best style?", []string{"a"}},
		{"duplicate options", "Best style?", []string{"a", "a"}},
		{"blank option", "Best style?", []string{"a", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &CreatePollRequest{
				Question:     tt.question,
				Options:      tt.options,
				MartialArtID: "m1",
			}, 1)
			require.Error(t, err)
			assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
		})
	}
}

func TestCreatePollDuplicatesAreCaseSensitive(t *testing.T) {
	svc, _ := newTestService()

	poll, err := svc.Create(context.Background(), &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"karate", "Karate"},
		MartialArtID: "m1",
	}, 1)
	require.NoError(t, err)
	assert.Len(t, poll.Options, 2)
}

func TestVote(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)
	require.NoError(t, err)

	karateID := optionIDOf(t, created, "Karate")
	updated, err := svc.Vote(ctx, created.ID, karateID, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.TotalVotes)
	for _, opt := range updated.Options {
		if opt.Text == "Karate" {
			assert.Equal(t, 1, opt.Votes)
			assert.Equal(t, 100.0, opt.Percentage)
			assert.Equal(t, []uint64{2}, opt.Voters)
		} else {
			assert.Equal(t, 0, opt.Votes)
			assert.Equal(t, 0.0, opt.Percentage)
		}
	}
}

func TestVoteTwiceSameOption(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)
	karateID := optionIDOf(t, created, "Karate")

	_, err := svc.Vote(ctx, created.ID, karateID, 2)
	require.NoError(t, err)

	_, err = svc.Vote(ctx, created.ID, karateID, 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.AlreadyVoted, apperrors.KindOf(err))
}

func TestVoteTwiceDifferentOptions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)

	_, err := svc.Vote(ctx, created.ID, optionIDOf(t, created, "Karate"), 2)
	require.NoError(t, err)

	_, err = svc.Vote(ctx, created.ID, optionIDOf(t, created, "Judo"), 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.AlreadyVoted, apperrors.KindOf(err))

	// The first vote is untouched.
	final, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, final.TotalVotes)
}

func TestVotesAlwaysMatchVoters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo", "Aikido"},
		MartialArtID: "m1",
	}, 1)

	for voter := uint(2); voter <= 6; voter++ {
		text := "Karate"
		if voter%2 == 0 {
			text = "Judo"
		}
		_, err := svc.Vote(ctx, created.ID, optionIDOf(t, created, text), voter)
		require.NoError(t, err)
	}

	final, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	for _, opt := range final.Options {
		assert.Equal(t, opt.Votes, len(opt.Voters))
	}
}

func TestVoteErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)
	karateID := optionIDOf(t, created, "Karate")

	t.Run("malformed poll id", func(t *testing.T) {
		_, err := svc.Vote(ctx, "not-an-id", karateID, 2)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("malformed option id", func(t *testing.T) {
		_, err := svc.Vote(ctx, created.ID, "not-an-id", 2)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("poll not found", func(t *testing.T) {
		_, err := svc.Vote(ctx, primitive.NewObjectID().Hex(), karateID, 2)
		assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	})

	t.Run("option not found", func(t *testing.T) {
		_, err := svc.Vote(ctx, created.ID, primitive.NewObjectID().Hex(), 2)
		assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	})
}

func TestPercentagesSplit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &CreatePollRequest{
		Question:     "Best style?",
		Options:      []string{"Karate", "Judo"},
		MartialArtID: "m1",
	}, 1)

	_, err := svc.Vote(ctx, created.ID, optionIDOf(t, created, "Karate"), 2)
	require.NoError(t, err)
	_, err = svc.Vote(ctx, created.ID, optionIDOf(t, created, "Karate"), 3)
	require.NoError(t, err)
	final, err := svc.Vote(ctx, created.ID, optionIDOf(t, created, "Judo"), 4)
	require.NoError(t, err)

	assert.Equal(t, 3, final.TotalVotes)
	for _, opt := range final.Options {
		if opt.Text == "Karate" {
			assert.InDelta(t, 66.666, opt.Percentage, 0.001)
		} else {
			assert.InDelta(t, 33.333, opt.Percentage, 0.001)
		}
	}
}

func TestGetPoll(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(ctx, primitive.NewObjectID().Hex())
		assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Get(ctx, "zzz")
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})
}

func TestListByMartialArt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreatePollRequest{
		Question: "Best style?", Options: []string{"a", "b"}, MartialArtID: "m1",
	}, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreatePollRequest{
		Question: "Best belt?", Options: []string{"black", "white"}, MartialArtID: "m2",
	}, 1)
	require.NoError(t, err)

	polls, err := svc.ListByMartialArt(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, "Best style?", polls[0].Question)
}
