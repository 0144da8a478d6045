package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/safarx/places-backend/internal/metrics"
	"github.com/safarx/places-backend/internal/models"
	"github.com/safarx/places-backend/internal/repository"
)

// AddressResolver turns a free-text address into coordinates. It only fails
// for syntactically invalid (empty) input; external service outages degrade
// to fallback coordinates instead of an error.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (models.Coordinates, error)
}

// defaultImageURL is assigned to every created place. Image upload is
// handled elsewhere; creation only needs a valid picture reference.
const defaultImageURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/1/10/" +
	"Empire_State_Building_%28aerial_view%29.jpg/400px-Empire_State_Building_%28aerial_view%29.jpg"

// PlaceService owns the cross-entity invariant between a place's creator
// reference and the creator's place list. Create and delete run both
// mutations inside one database transaction, so the invariant holds at rest
// after every committed operation. No other code path mutates either side.
type PlaceService struct {
	log      *slog.Logger          // Logger for logging service activities
	db       repository.Database   // Source of shared transaction handles
	places   repository.PlacesRepo // Place storage
	users    repository.UsersRepo  // User storage
	resolver AddressResolver       // Address resolution pipeline
	metrics  *metrics.Metrics      // Metrics for tracking operation outcomes
}

// NewPlaceService creates a new instance of PlaceService. It takes a logger,
// the database handle used to open transactions, both repositories, the
// address resolver and metrics. It returns a pointer to the newly created
// service.
func NewPlaceService(
	log *slog.Logger,
	db repository.Database,
	places repository.PlacesRepo,
	users repository.UsersRepo,
	resolver AddressResolver,
	mtr *metrics.Metrics,
) *PlaceService {
	return &PlaceService{
		log:      log,
		db:       db,
		places:   places,
		users:    users,
		resolver: resolver,
		metrics:  mtr,
	}
}

// CreatePlaceForUser resolves the draft's address to coordinates, then
// persists the new place and appends its id to the creator's place list in
// a single transaction. Returns models.ErrInvalidInput for a malformed
// draft, models.ErrInvalidAddress when resolution rejects the address,
// models.ErrUserNotFound when the creator does not exist (nothing is
// persisted in that case), and models.ErrOperationFailed when any
// transactional step fails — in which case neither entity is mutated.
func (s *PlaceService) CreatePlaceForUser(
	ctx context.Context,
	draft models.PlaceDraft,
	creatorID string,
) (*models.Place, error) {
	if draft.Title == "" || draft.Address == "" || creatorID == "" {
		return nil, models.ErrInvalidInput
	}

	coords, err := s.resolver.Resolve(ctx, draft.Address)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "Failed to load creator", "user", creatorID, "error", err)
		return nil, models.ErrOperationFailed
	}

	place := &models.Place{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Address:     draft.Address,
		Location:    coords,
		ImageURL:    defaultImageURL,
		CreatorID:   user.ID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		s.metrics.PlaceOperations.WithLabelValues("create", "failure").Inc()
		return nil, models.ErrOperationFailed
	}
	// Rollback is a no-op once the transaction has committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err = s.places.CreateTx(ctx, tx, place); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist place", "place", place.ID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("create", "failure").Inc()
		return nil, models.ErrOperationFailed
	}

	if err = s.users.AppendPlaceTx(ctx, tx, user.ID, place.ID); err != nil {
		s.log.ErrorContext(ctx, "Failed to link place to creator", "place", place.ID, "user", user.ID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("create", "failure").Inc()
		return nil, models.ErrOperationFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to commit place creation", "place", place.ID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("create", "failure").Inc()
		return nil, models.ErrOperationFailed
	}

	s.metrics.PlaceOperations.WithLabelValues("create", "success").Inc()
	s.log.InfoContext(ctx, "Created place", "place", place.ID, "user", user.ID)

	return place, nil
}

// DeletePlace removes a place and takes its id out of the owner's place
// list, committing both or neither. Returns models.ErrPlaceNotFound when
// the place does not exist and models.ErrOperationFailed when the
// transaction cannot complete — with no partial mutation observable.
func (s *PlaceService) DeletePlace(ctx context.Context, placeID string) error {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, models.ErrPlaceNotFound) {
			return err
		}
		s.log.ErrorContext(ctx, "Failed to load place", "place", placeID, "error", err)
		return models.ErrOperationFailed
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		s.metrics.PlaceOperations.WithLabelValues("delete", "failure").Inc()
		return models.ErrOperationFailed
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = s.places.DeleteTx(ctx, tx, place.ID); err != nil {
		s.log.ErrorContext(ctx, "Failed to delete place", "place", place.ID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("delete", "failure").Inc()
		return models.ErrOperationFailed
	}

	if err = s.users.RemovePlaceTx(ctx, tx, place.CreatorID, place.ID); err != nil {
		s.log.ErrorContext(ctx, "Failed to unlink place from creator",
			"place", place.ID, "user", place.CreatorID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("delete", "failure").Inc()
		return models.ErrOperationFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to commit place deletion", "place", place.ID, "error", err)
		s.metrics.PlaceOperations.WithLabelValues("delete", "failure").Inc()
		return models.ErrOperationFailed
	}

	s.metrics.PlaceOperations.WithLabelValues("delete", "success").Inc()
	s.log.InfoContext(ctx, "Deleted place", "place", place.ID, "user", place.CreatorID)

	return nil
}

// UpdatePlace changes the title and description of an existing place. It is
// a single-entity operation with no cross-entity invariant to protect, so
// no transaction is opened.
func (s *PlaceService) UpdatePlace(ctx context.Context, placeID, title, description string) (*models.Place, error) {
	if title == "" {
		return nil, models.ErrInvalidInput
	}

	place, err := s.places.UpdateDetails(ctx, placeID, title, description)
	if err != nil {
		if errors.Is(err, models.ErrPlaceNotFound) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "Failed to update place", "place", placeID, "error", err)
		return nil, models.ErrOperationFailed
	}

	s.metrics.PlaceOperations.WithLabelValues("update", "success").Inc()

	return place, nil
}

// GetPlaceByID returns a single place or models.ErrPlaceNotFound.
func (s *PlaceService) GetPlaceByID(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, models.ErrPlaceNotFound) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "Failed to load place", "place", placeID, "error", err)
		return nil, models.ErrOperationFailed
	}

	return place, nil
}

// GetPlacesByUserID returns every place owned by the user, in creation
// order. Returns models.ErrUserNotFound when the user does not exist; a
// user without places yields an empty slice.
func (s *PlaceService) GetPlacesByUserID(ctx context.Context, userID string) ([]models.Place, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "Failed to load user", "user", userID, "error", err)
		return nil, models.ErrOperationFailed
	}

	places, err := s.places.ListByCreator(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list places by creator", "user", userID, "error", err)
		return nil, models.ErrOperationFailed
	}

	return places, nil
}
