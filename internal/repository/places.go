package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/safarx/places-backend/internal/models"
)

// PlacesRepo is the contract the place service needs from place storage.
// CreateTx and DeleteTx take an explicit transaction handle so the caller
// can span a place mutation and the owner's list mutation atomically.
type PlacesRepo interface {
	GetByID(ctx context.Context, id string) (*models.Place, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Place, error)
	UpdateDetails(ctx context.Context, id, title, description string) (*models.Place, error)
	CreateTx(ctx context.Context, tx pgx.Tx, place *models.Place) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id string) error
}

// PlaceRepository persists places in PostgreSQL.
type PlaceRepository struct {
	db  Database
	log *slog.Logger
}

// NewPlaceRepository creates a new instance of PlaceRepository with the
// provided Database. It returns a pointer to the newly created repository.
func NewPlaceRepository(db Database, log *slog.Logger) *PlaceRepository {
	return &PlaceRepository{db: db, log: log}
}

// GetByID retrieves a single place. Returns models.ErrPlaceNotFound when no
// row exists for the id.
func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	query := `
		SELECT id, title, description, address, latitude, longitude, image_url, creator_id, created_at
		FROM places
		WHERE id = $1;
	`

	var place models.Place
	err := r.db.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Latitude,
		&place.Location.Longitude,
		&place.ImageURL,
		&place.CreatorID,
		&place.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to query place: %w", err)
	}

	return &place, nil
}

// ListByCreator retrieves every place owned by the given user, ordered by
// creation time so the result mirrors the owner's place list.
func (r *PlaceRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.Place, error) {
	query := `
		SELECT id, title, description, address, latitude, longitude, image_url, creator_id, created_at
		FROM places
		WHERE creator_id = $1
		ORDER BY created_at ASC;
	`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query places by creator: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var place models.Place
		if errScan := rows.Scan(
			&place.ID,
			&place.Title,
			&place.Description,
			&place.Address,
			&place.Location.Latitude,
			&place.Location.Longitude,
			&place.ImageURL,
			&place.CreatorID,
			&place.CreatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", errScan)
		}
		places = append(places, place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return places, nil
}

// UpdateDetails changes title and description of an existing place and
// returns the updated record. Returns models.ErrPlaceNotFound when the
// place does not exist.
func (r *PlaceRepository) UpdateDetails(ctx context.Context, id, title, description string) (*models.Place, error) {
	query := `
		UPDATE places
		SET title = $1, description = $2
		WHERE id = $3
		RETURNING id, title, description, address, latitude, longitude, image_url, creator_id, created_at;
	`

	var place models.Place
	err := r.db.QueryRow(ctx, query, title, description, id).Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Latitude,
		&place.Location.Longitude,
		&place.ImageURL,
		&place.CreatorID,
		&place.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	r.log.DebugContext(ctx, "Updated place details", "id", id)

	return &place, nil
}

// CreateTx inserts a new place inside the caller's transaction. The row is
// not observable until the caller commits.
func (r *PlaceRepository) CreateTx(ctx context.Context, tx pgx.Tx, place *models.Place) error {
	query := `
		INSERT INTO places (id, title, description, address, latitude, longitude, image_url, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := tx.Exec(ctx, query,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Latitude,
		place.Location.Longitude,
		place.ImageURL,
		place.CreatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}

	return nil
}

// DeleteTx removes a place row inside the caller's transaction.
func (r *PlaceRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id string) error {
	query := `DELETE FROM places WHERE id = $1;`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPlaceNotFound
	}

	return nil
}
