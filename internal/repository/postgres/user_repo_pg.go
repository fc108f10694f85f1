package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, first_name, last_name, profile_image_url, password_hash, password_salt, created_at, updated_at"

func (r *UserRepository) CreateEmailUser(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, password_hash, password_salt)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, email, passwordHash, passwordSalt).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertExternalUser implements the upsert-on-login flow for identities
// asserted by an external provider. Profile fields only ever fill in or
// refresh; a login with fewer claims never blanks existing values.
func (r *UserRepository) UpsertExternalUser(ctx context.Context, email string, firstName, lastName, imageURL *string) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, first_name, last_name, profile_image_url)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE
        SET first_name = COALESCE(EXCLUDED.first_name, users.first_name),
            last_name = COALESCE(EXCLUDED.last_name, users.last_name),
            profile_image_url = COALESCE(EXCLUDED.profile_image_url, users.profile_image_url),
            updated_at = NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, email, firstName, lastName, imageURL).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, imageURL *string) (*domain.User, error) {
	const query = `
        UPDATE users
        SET first_name = COALESCE($2, first_name),
            last_name = COALESCE($3, last_name),
            profile_image_url = COALESCE($4, profile_image_url),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, id, firstName, lastName, imageURL).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
