package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kidspots/kidspots-api/internal/domain"
	"github.com/kidspots/kidspots-api/internal/repository/ports"
)

// VenueMarkRepository implements both relation kinds over their near-twin
// tables; the constructors below fix the table and timestamp column.
type VenueMarkRepository struct {
	db      *sqlx.DB
	table   string
	timeCol string
}

func NewFavoriteRepo(db *sqlx.DB) *VenueMarkRepository {
	return &VenueMarkRepository{db: db, table: "user_favorites", timeCol: "created_at"}
}

func NewVisitedRepo(db *sqlx.DB) *VenueMarkRepository {
	return &VenueMarkRepository{db: db, table: "user_visited", timeCol: "visited_at"}
}

func (r *VenueMarkRepository) columns() string {
	return fmt.Sprintf("id, user_id, venue_id, venue_name, venue_type, venue_lat, venue_lng, %s AS marked_at", r.timeCol)
}

func (r *VenueMarkRepository) ListByUser(ctx context.Context, userID uuid.UUID, types []domain.VenueType) ([]domain.VenueMark, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
	`, r.columns(), r.table)
	params := []any{userID}

	if len(types) > 0 {
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, string(t))
		}
		query += " AND venue_type = ANY($2)"
		params = append(params, pq.StringArray(names))
	}
	query += fmt.Sprintf(" ORDER BY %s DESC, id DESC", r.timeCol)

	rows, err := r.db.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make([]domain.VenueMark, 0)
	for rows.Next() {
		var mark domain.VenueMark
		if err := rows.StructScan(&mark); err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return marks, nil
}

func (r *VenueMarkRepository) Add(ctx context.Context, userID uuid.UUID, venue domain.VenueSnapshot) (*domain.VenueMark, error) {
	// The unique constraint on (user_id, venue_id) plus DO NOTHING makes
	// repeated adds race-safe; the follow-up select returns whichever row
	// won.
	insert := fmt.Sprintf(`
		INSERT INTO %s (user_id, venue_id, venue_name, venue_type, venue_lat, venue_lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, venue_id) DO NOTHING
		RETURNING %s
	`, r.table, r.columns())

	var mark domain.VenueMark
	err := r.db.GetContext(ctx, &mark, insert, userID, venue.VenueID, venue.VenueName, venue.VenueType, venue.VenueLat, venue.VenueLng)
	if err == nil {
		return &mark, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Conflict path: the row already exists.
	selectExisting := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND venue_id = $2
	`, r.columns(), r.table)
	if err := r.db.GetContext(ctx, &mark, selectExisting, userID, venue.VenueID); err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *VenueMarkRepository) Remove(ctx context.Context, userID uuid.UUID, venueID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND venue_id = $2
	`, r.table)
	_, err := r.db.ExecContext(ctx, query, userID, venueID)
	return err
}

func (r *VenueMarkRepository) Exists(ctx context.Context, userID uuid.UUID, venueID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE user_id = $1 AND venue_id = $2
		)
	`, r.table)
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, venueID); err != nil {
		return false, err
	}
	return exists, nil
}

var _ ports.VenueMarkRepository = (*VenueMarkRepository)(nil)
