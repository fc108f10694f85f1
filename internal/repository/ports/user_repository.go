package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/kidspots/kidspots-api/internal/domain"
)

type UserRepository interface {
	CreateEmailUser(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	UpsertExternalUser(ctx context.Context, email string, firstName, lastName, imageURL *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, imageURL *string) (*domain.User, error)
}
