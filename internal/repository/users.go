package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/safarx/places-backend/internal/models"
)

// UsersRepo is the contract the place service needs from user storage. The
// place-list mutations take the same transaction handle as the place
// mutation they accompany.
type UsersRepo interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	AppendPlaceTx(ctx context.Context, tx pgx.Tx, userID, placeID string) error
	RemovePlaceTx(ctx context.Context, tx pgx.Tx, userID, placeID string) error
}

// UserRepository persists users in PostgreSQL. The place list is stored as
// a text[] column so append order is preserved.
type UserRepository struct {
	db  Database
	log *slog.Logger
}

// NewUserRepository creates a new instance of UserRepository with the
// provided Database. It returns a pointer to the newly created repository.
func NewUserRepository(db Database, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// GetByID retrieves a single user together with the ordered list of owned
// place ids. Returns models.ErrUserNotFound when no row exists for the id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, place_ids
		FROM users
		WHERE id = $1;
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.PlaceIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// AppendPlaceTx appends a place id to the end of the user's place list
// inside the caller's transaction. The caller guarantees the id is fresh,
// so the list stays duplicate-free.
func (r *UserRepository) AppendPlaceTx(ctx context.Context, tx pgx.Tx, userID, placeID string) error {
	query := `
		UPDATE users
		SET place_ids = array_append(place_ids, $1)
		WHERE id = $2;
	`

	tag, err := tx.Exec(ctx, query, placeID, userID)
	if err != nil {
		return fmt.Errorf("failed to append place to user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	r.log.DebugContext(ctx, "Appended place to user's list", "user", userID, "place", placeID)

	return nil
}

// RemovePlaceTx removes a place id from the user's place list inside the
// caller's transaction.
func (r *UserRepository) RemovePlaceTx(ctx context.Context, tx pgx.Tx, userID, placeID string) error {
	query := `
		UPDATE users
		SET place_ids = array_remove(place_ids, $1)
		WHERE id = $2;
	`

	tag, err := tx.Exec(ctx, query, placeID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove place from user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	r.log.DebugContext(ctx, "Removed place from user's list", "user", userID, "place", placeID)

	return nil
}
