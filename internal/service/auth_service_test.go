package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/media"
	"github.com/kidspots/kidspots-api/internal/util"
)

type fakeUserRepo struct {
	createEmail  string
	createHash   []byte
	createResult *domain.User
	createErr    error

	upsertEmail     string
	upsertFirstName *string
	upsertResult    *domain.User
	upsertErr       error

	findByEmailResult *domain.User
	findByEmailErr    error

	findByIDInput  uuid.UUID
	findByIDResult *domain.User
	findByIDErr    error

	updateResult *domain.User
	updateErr    error
}

func (f *fakeUserRepo) CreateEmailUser(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	f.createEmail = email
	f.createHash = append([]byte(nil), passwordHash...)
	return f.createResult, f.createErr
}

func (f *fakeUserRepo) UpsertExternalUser(ctx context.Context, email string, firstName, lastName, imageURL *string) (*domain.User, error) {
	f.upsertEmail = email
	f.upsertFirstName = firstName
	return f.upsertResult, f.upsertErr
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.findByEmailResult, f.findByEmailErr
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.findByIDInput = id
	return f.findByIDResult, f.findByIDErr
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, imageURL *string) (*domain.User, error) {
	return f.updateResult, f.updateErr
}

type fakeSessionRepo struct {
	createdToken     string
	createErr        error
	deactivatedToken string
	findActiveToken  string
	findActiveResult *domain.Session
	findActiveErr    error
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	f.createdToken = token
	return &domain.Session{UserID: userID, Token: token, ExpiresAt: expiresAt, IsActive: true}, f.createErr
}

func (f *fakeSessionRepo) DeactivateSession(ctx context.Context, token string) error {
	f.deactivatedToken = token
	return nil
}

func (f *fakeSessionRepo) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	f.findActiveToken = token
	return f.findActiveResult, f.findActiveErr
}

func newAuthServiceForTests(users *fakeUserRepo, sessions *fakeSessionRepo) *AuthService {
	return NewAuthService(users, sessions, nil, nil, "test-secret", AuthConfig{SessionTTL: time.Hour})
}

const strongPassword = "Sup3r-secret-pass!"

func TestSignupEmailIssuesSession(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "kid@example.com"}
	users := &fakeUserRepo{createResult: user}
	sessions := &fakeSessionRepo{}
	svc := newAuthServiceForTests(users, sessions)

	got, token, err := svc.SignupEmail(context.Background(), "  Kid@Example.com ", strongPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.createEmail != "kid@example.com" {
		t.Fatalf("expected email lowercased and trimmed, got %q", users.createEmail)
	}
	if len(users.createHash) == 0 {
		t.Fatalf("expected password hash to be derived")
	}
	if token == "" || sessions.createdToken != token {
		t.Fatalf("expected session to be recorded for issued token")
	}
	if got.ID != user.ID {
		t.Fatalf("expected created user returned")
	}
}

func TestSignupEmailRejectsWeakPassword(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{})
	if _, _, err := svc.SignupEmail(context.Background(), "kid@example.com", "short"); err == nil {
		t.Fatal("expected weak password to be rejected")
	}
}

func TestSignupEmailDuplicate(t *testing.T) {
	users := &fakeUserRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newAuthServiceForTests(users, &fakeSessionRepo{})

	if _, _, err := svc.SignupEmail(context.Background(), "kid@example.com", strongPassword); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginEmailWrongPassword(t *testing.T) {
	hash, salt, err := util.DerivePassword(strongPassword)
	if err != nil {
		t.Fatalf("derive password: %v", err)
	}
	user := &domain.User{ID: uuid.New(), Email: "kid@example.com", PasswordHash: hash, PasswordSalt: salt}
	svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{})

	if _, _, err := svc.LoginEmail(context.Background(), "kid@example.com", "Wrong-passw0rd!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginEmailUnknownUser(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}, &fakeSessionRepo{})

	if _, _, err := svc.LoginEmail(context.Background(), "nobody@example.com", strongPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginGoogleUpsertsIdentity(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "kid@example.com"}
	users := &fakeUserRepo{upsertResult: user}
	sessions := &fakeSessionRepo{}
	svc := newAuthServiceForTests(users, sessions)
	svc.validateGoogleToken = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]any{
			"email":      "Kid@Example.com",
			"given_name": "Kid",
		}}, nil
	}

	got, token, err := svc.LoginGoogle(context.Background(), "google-id-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.upsertEmail != "kid@example.com" {
		t.Fatalf("expected lowercased email upsert, got %q", users.upsertEmail)
	}
	if users.upsertFirstName == nil || *users.upsertFirstName != "Kid" {
		t.Fatalf("expected given_name claim forwarded")
	}
	if token == "" || got.ID != user.ID {
		t.Fatalf("expected session for upserted user")
	}
}

func TestLoginGoogleInvalidToken(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{})
	svc.validateGoogleToken = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("signature mismatch")
	}

	if _, _, err := svc.LoginGoogle(context.Background(), "bogus"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "kid@example.com"}
	users := &fakeUserRepo{findByIDResult: user}
	sessions := &fakeSessionRepo{findActiveResult: &domain.Session{IsActive: true}}
	svc := newAuthServiceForTests(users, sessions)

	token, _, err := svc.jwt.Generate(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected resolved user")
	}
	if sessions.findActiveToken != token {
		t.Fatalf("expected session lookup with presented token")
	}
	if users.findByIDInput != user.ID {
		t.Fatalf("expected user lookup by claim subject")
	}
}

func TestAuthenticateRevokedSession(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "kid@example.com"}
	sessions := &fakeSessionRepo{findActiveErr: sql.ErrNoRows}
	svc := newAuthServiceForTests(&fakeUserRepo{findByIDResult: user}, sessions)

	token, _, err := svc.jwt.Generate(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for revoked session, got %v", err)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{})

	if _, err := svc.Authenticate(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLogoutDeactivatesSession(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := newAuthServiceForTests(&fakeUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "token123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessions.deactivatedToken != "token123" {
		t.Fatalf("expected session deactivated with token123")
	}
}

func TestUpdateProfileImageWithoutStorage(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{})

	upload := &media.Upload{FileName: "avatar.png", ContentType: "image/png", Size: 10}
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), nil, nil, upload)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
