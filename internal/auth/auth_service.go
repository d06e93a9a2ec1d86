package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"martial-service/pkg/apperrors"
)

type Service struct {
	repo      UserRepository
	jwtSecret string
	jwtExpire time.Duration
}

func NewService(repo UserRepository, secret string, expire time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: secret,
		jwtExpire: expire,
	}
}

// Register handles user registration. The email must not be in use yet;
// the password is stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if existing, _ := s.repo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "This email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.Response()}, nil
}

// Login handles user authentication.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.New(apperrors.Unauthorized, "Incorrect password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user.Response()}, nil
}

// CurrentUser returns the profile projection of the given user.
func (s *Service) CurrentUser(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, err
	}
	resp := user.Response()
	return &resp, nil
}

// UpdateProfile applies the provided fields; empty fields are untouched.
// Changing the email to one already registered fails with Conflict.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, _ := s.repo.FindByEmail(ctx, req.Email); existing != nil {
			return nil, apperrors.New(apperrors.Conflict, "This email is already in use")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := user.Response()
	return &resp, nil
}

// VerifyToken validates a bearer token and resolves the backing user.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.New(apperrors.Unauthorized, "Token expired")
		}
		return nil, apperrors.New(apperrors.Unauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.Unauthorized, "Invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, apperrors.New(apperrors.Unauthorized, "Invalid token")
	}

	user, err := s.repo.FindByID(ctx, uint(sub))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, err
	}

	return &Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (s *Service) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(s.jwtExpire).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
