package post

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"martial-service/internal/auth"
	"martial-service/pkg/apperrors"
)

type fakeRepo struct {
	posts map[primitive.ObjectID]*Post
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: make(map[primitive.ObjectID]*Post)}
}

func (r *fakeRepo) Insert(_ context.Context, post *Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakeRepo) FindByMartialArt(_ context.Context, martialArtID string) ([]*Post, error) {
	var result []*Post
	for _, p := range r.posts {
		if p.MartialArtID == martialArtID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (r *fakeRepo) Replace(_ context.Context, post *Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.posts, id)
	return nil
}

type fakeDirectory struct {
	users map[uint]*auth.User
}

func (d *fakeDirectory) FindByID(_ context.Context, id uint) (*auth.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type fakeUploader struct {
	url  string
	err  error
	seen int
}

func (u *fakeUploader) UploadFile(_ context.Context, _ *multipart.FileHeader, _ string) (string, error) {
	u.seen++
	return u.url, u.err
}

func newTestService(uploader *fakeUploader) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	ana := &auth.User{Name: "Ana", Avatar: "http://img/ana.png"}
	ana.ID = 1
	bob := &auth.User{Name: "Bob"}
	bob.ID = 2
	dir := &fakeDirectory{users: map[uint]*auth.User{1: ana, 2: bob}}
	return NewService(repo, dir, uploader), repo
}

func imageFileHeader() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "kick.png",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService(&fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "m1", "First training session!", nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana", created.UserName)
	assert.Equal(t, 0, created.Reactions.Count)
	assert.Empty(t, created.Comments)
	assert.Empty(t, created.MediaURL)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newTestService(&fakeUploader{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "m1", "   ", nil)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	_, err = svc.Create(ctx, 1, "", "content", nil)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestCreatePostWithMedia(t *testing.T) {
	uploader := &fakeUploader{url: "http://minio/martial-media/kick.png"}
	svc, _ := newTestService(uploader)

	created, err := svc.Create(context.Background(), 1, "m1", "Check this out", imageFileHeader())
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.seen)
	assert.Equal(t, "http://minio/martial-media/kick.png", created.MediaURL)
	assert.Equal(t, MediaTypeImage, created.MediaType)
}

// A failed relay must not prevent the post from being created.
func TestCreatePostMediaRelayFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("storage unreachable")}
	svc, _ := newTestService(uploader)

	created, err := svc.Create(context.Background(), 1, "m1", "Check this out", imageFileHeader())
	require.NoError(t, err)
	assert.Empty(t, created.MediaURL)
	assert.Empty(t, created.MediaType)
}

func TestToggleReaction(t *testing.T) {
	svc, _ := newTestService(&fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "m1", "React to me", nil)
	require.NoError(t, err)

	reactions, err := svc.ToggleReaction(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, reactions.Count)
	assert.Equal(t, []uint64{2}, reactions.Users)
	assert.Equal(t, reactions.Count, len(reactions.Users))

	// Toggling again removes the reaction.
	reactions, err = svc.ToggleReaction(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, reactions.Count)
	assert.Empty(t, reactions.Users)
}

func TestAddComment(t *testing.T) {
	svc, _ := newTestService(&fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "m1", "Say something", nil)
	require.NoError(t, err)

	t.Run("blank content", func(t *testing.T) {
		_, err := svc.AddComment(ctx, created.ID, 2, "  ")
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("ok", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, created.ID, 2, "Nice kick!")
		require.NoError(t, err)
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "Bob", comment.UserName)

		posts, err := svc.ListByMartialArt(ctx, "m1")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Len(t, posts[0].Comments, 1)
		assert.Equal(t, "Nice kick!", posts[0].Comments[0].Content)
	})
}

func TestDeletePostOwnership(t *testing.T) {
	svc, _ := newTestService(&fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "m1", "Mine", nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, 2)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	require.NoError(t, svc.Delete(ctx, created.ID, 1))

	err = svc.Delete(ctx, created.ID, 1)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
