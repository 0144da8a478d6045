package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/safarx/places-backend/internal/models"
	"github.com/safarx/places-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectUserQuery = `
	SELECT id, name, email, place_ids
	FROM users
	WHERE id = $1;
`

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success - user with ordered place list", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
			WithArgs("u1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "place_ids"}).
				AddRow("u1", "Ayaan", "ayaan@example.com", []string{"p1", "p2"}))

		user, err := repo.GetByID(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Ayaan", user.Name)
		assert.Equal(t, []string{"p1", "p2"}, user.PlaceIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - user not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetByID(ctx, "missing")

		require.Nil(t, user)
		require.ErrorIs(t, err, models.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(selectUserQuery)).
			WithArgs("u1").
			WillReturnError(assert.AnError)

		user, err := repo.GetByID(ctx, "u1")

		require.Nil(t, user)
		require.ErrorContains(t, err, "failed to query user")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_AppendPlaceTx(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		UPDATE users
		SET place_ids = array_append(place_ids, $1)
		WHERE id = $2;
	`

	t.Run("success - place appended", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("p1", "u1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.AppendPlaceTx(ctx, tx, "u1", "p1"))
		require.NoError(t, tx.Commit(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - user row missing", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("p1", "missing").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		err = repo.AppendPlaceTx(ctx, tx, "missing", "p1")
		require.ErrorIs(t, err, models.ErrUserNotFound)
		require.NoError(t, tx.Rollback(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_RemovePlaceTx(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		UPDATE users
		SET place_ids = array_remove(place_ids, $1)
		WHERE id = $2;
	`

	t.Run("success - place removed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("p1", "u1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.RemovePlaceTx(ctx, tx, "u1", "p1"))
		require.NoError(t, tx.Commit(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - exec failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewUserRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("p1", "u1").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		err = repo.RemovePlaceTx(ctx, tx, "u1", "p1")
		require.ErrorContains(t, err, "failed to remove place from user")
		require.ErrorIs(t, err, assert.AnError)
		require.NoError(t, tx.Rollback(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
