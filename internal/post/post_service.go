package post

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"martial-service/internal/auth"
	"martial-service/internal/ownership"
	"martial-service/pkg/apperrors"
)

const mediaFolder = "martial_world_posts"

// UserDirectory resolves user IDs to profiles for response decoration.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*auth.User, error)
}

// MediaUploader relays an uploaded file and returns its public URL.
type MediaUploader interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

type Service struct {
	repo     Repository
	users    UserDirectory
	uploader MediaUploader
}

func NewService(repo Repository, users UserDirectory, uploader MediaUploader) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		uploader: uploader,
	}
}

func (s *Service) ListByMartialArt(ctx context.Context, martialArtID string) ([]PostResponse, error) {
	posts, err := s.repo.FindByMartialArt(ctx, martialArtID)
	if err != nil {
		return nil, err
	}

	profiles := newProfileCache(s.users)
	responses := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, s.format(ctx, p, profiles))
	}
	return responses, nil
}

// Create stores a new post. A media attachment is relayed to object storage
// first; if the relay fails the post is still created without it.
func (s *Service) Create(ctx context.Context, userID uint, martialArtID, content string, media *multipart.FileHeader) (*PostResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.New(apperrors.Validation, "Post content is required")
	}
	if martialArtID == "" {
		return nil, apperrors.New(apperrors.Validation, "Martial art ID is required")
	}

	var mediaURL, mediaType string
	if media != nil {
		url, err := s.uploader.UploadFile(ctx, media, mediaFolder)
		if err != nil {
			slog.Warn("Media relay failed, creating post without attachment", "error", err)
		} else {
			mediaURL = url
			mediaType = MediaTypeVideo
			if strings.HasPrefix(media.Header.Get("Content-Type"), "image/") {
				mediaType = MediaTypeImage
			}
		}
	}

	post := &Post{
		ID:           primitive.NewObjectID(),
		UserID:       uint64(userID),
		MartialArtID: martialArtID,
		Content:      content,
		MediaURL:     mediaURL,
		MediaType:    mediaType,
		Reactions:    Reactions{Count: 0, Users: []uint64{}},
		Comments:     []Comment{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}

	resp := s.format(ctx, post, newProfileCache(s.users))
	return &resp, nil
}

// ToggleReaction adds the user's reaction, or removes it if already present.
func (s *Service) ToggleReaction(ctx context.Context, postID string, userID uint) (*Reactions, error) {
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	uid := uint64(userID)
	idx := -1
	for i, u := range post.Reactions.Users {
		if u == uid {
			idx = i
			break
		}
	}

	if idx >= 0 {
		post.Reactions.Users = append(post.Reactions.Users[:idx], post.Reactions.Users[idx+1:]...)
	} else {
		post.Reactions.Users = append(post.Reactions.Users, uid)
	}
	post.Reactions.Count = len(post.Reactions.Users)

	if err := s.repo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return &post.Reactions, nil
}

// AddComment appends an embedded comment and returns its decorated projection.
func (s *Service) AddComment(ctx context.Context, postID string, userID uint, content string) (*CommentResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.New(apperrors.Validation, "Comment content is required")
	}

	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := Comment{
		ID:        uuid.NewString(),
		UserID:    uint64(userID),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	post.Comments = append(post.Comments, comment)
	if err := s.repo.Replace(ctx, post); err != nil {
		return nil, err
	}

	name, avatar := newProfileCache(s.users).lookup(ctx, comment.UserID)
	return &CommentResponse{
		ID:         comment.ID,
		UserID:     uint(comment.UserID),
		UserName:   name,
		UserAvatar: avatar,
		Content:    comment.Content,
		Timestamp:  comment.CreatedAt,
	}, nil
}

// Delete removes a post. Owner-only; NotFound before Forbidden.
func (s *Service) Delete(ctx context.Context, postID string, callerID uint) error {
	post, err := s.find(ctx, postID)
	if err != nil {
		return err
	}

	if err := ownership.Check(post, callerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, post.ID)
}

func (s *Service) find(ctx context.Context, id string) (*Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Invalid post ID format")
	}

	post, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *Service) format(ctx context.Context, p *Post, profiles *profileCache) PostResponse {
	name, avatar := profiles.lookup(ctx, p.UserID)

	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, cm := range p.Comments {
		cmName, cmAvatar := profiles.lookup(ctx, cm.UserID)
		comments = append(comments, CommentResponse{
			ID:         cm.ID,
			UserID:     uint(cm.UserID),
			UserName:   cmName,
			UserAvatar: cmAvatar,
			Content:    cm.Content,
			Timestamp:  cm.CreatedAt,
		})
	}

	reactions := p.Reactions
	if reactions.Users == nil {
		reactions.Users = []uint64{}
	}

	return PostResponse{
		ID:         p.ID.Hex(),
		UserID:     uint(p.UserID),
		UserName:   name,
		UserAvatar: avatar,
		Content:    p.Content,
		MediaURL:   p.MediaURL,
		MediaType:  p.MediaType,
		Timestamp:  p.CreatedAt,
		Reactions:  reactions,
		Comments:   comments,
	}
}

// profileCache deduplicates user lookups within a single request.
type profileCache struct {
	users UserDirectory
	seen  map[uint64]*auth.User
}

func newProfileCache(users UserDirectory) *profileCache {
	return &profileCache{users: users, seen: make(map[uint64]*auth.User)}
}

func (c *profileCache) lookup(ctx context.Context, id uint64) (name, avatar string) {
	user, ok := c.seen[id]
	if !ok {
		user, _ = c.users.FindByID(ctx, uint(id))
		c.seen[id] = user
	}
	if user == nil {
		return "", ""
	}
	return user.Name, user.Avatar
}
