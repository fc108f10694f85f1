package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/media"
	"github.com/kidspots/kidspots-api/internal/repository/ports"
	"github.com/kidspots/kidspots-api/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrStorageUnavailable = errors.New("profile image storage is not configured")
)

type AuthConfig struct {
	GoogleAudience string
	SessionTTL     time.Duration
	ProfileBucket  string
	ImageMaxBytes  int64
}

// AuthService is the session/identity provider: it authenticates requests
// and supplies a stable user id. User rows are created or refreshed here
// and nowhere else.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	storage  ports.ObjectStorage
	images   media.Processor
	jwt      *util.JWTManager
	cfg      AuthConfig

	// Seam for tests; production uses idtoken.Validate.
	validateGoogleToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, storage ports.ObjectStorage, images media.Processor, jwtSecret string, cfg AuthConfig) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:               users,
		sessions:            sessions,
		storage:             storage,
		images:              images,
		jwt:                 util.NewJWTManager(jwtSecret, cfg.SessionTTL),
		cfg:                 cfg,
		validateGoogleToken: idtoken.Validate,
	}
}

func (s *AuthService) SignupEmail(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", errors.New("email is required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) LoginEmail(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginGoogle validates a Google ID token, upserts the asserted identity
// and opens a session for it.
func (s *AuthService) LoginGoogle(ctx context.Context, idTok string) (*domain.User, string, error) {
	payload, err := s.validateGoogleToken(ctx, idTok, s.cfg.GoogleAudience)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", fmt.Errorf("%w: token carries no email", ErrInvalidCredentials)
	}

	user, err := s.users.UpsertExternalUser(ctx,
		strings.ToLower(email),
		optionalClaim(payload.Claims, "given_name"),
		optionalClaim(payload.Claims, "family_name"),
		optionalClaim(payload.Claims, "picture"),
	)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token into a user, or fails. The token
// must both parse and still have an active session row, so logout revokes
// access immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	if _, err := s.sessions.FindActiveSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeactivateSession(ctx, token)
}

// UpdateProfile updates name fields and optionally replaces the profile
// image. The image is validated and downscaled before upload.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string, image *media.Upload) (*domain.User, error) {
	var imageURL *string

	if image != nil {
		if s.storage == nil || s.images == nil {
			return nil, ErrStorageUnavailable
		}
		if s.cfg.ImageMaxBytes > 0 && image.Size > s.cfg.ImageMaxBytes {
			return nil, fmt.Errorf("profile image exceeds %d bytes", s.cfg.ImageMaxBytes)
		}

		processed, err := s.images.Process(ctx, *image, media.DefaultMaxDimension)
		if err != nil {
			return nil, err
		}

		objectName := fmt.Sprintf("profiles/%s%s", userID, imageExtension(processed.ContentType, image.FileName))
		url, err := s.storage.Upload(ctx, s.cfg.ProfileBucket, objectName, processed.ContentType,
			bytes.NewReader(processed.Bytes), int64(len(processed.Bytes)))
		if err != nil {
			return nil, fmt.Errorf("store profile image: %w", err)
		}
		imageURL = &url
	}

	return s.users.UpdateProfile(ctx, userID, firstName, lastName, imageURL)
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (string, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func optionalClaim(claims map[string]any, key string) *string {
	if v, ok := claims[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func imageExtension(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := path.Ext(fileName); ext != "" {
		return ext
	}
	return ""
}
