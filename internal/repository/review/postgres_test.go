package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

var now = time.Date(2025, 9, 24, 16, 48, 7, 0, time.UTC)

var reviewColumns = []string{
	"id", "product_id", "customer_id", "rating", "comment", "is_verified_purchase", "reviewed_at", "created_at", "updated_at",
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func reviewRow(rv domain.Review) []any {
	return []any{
		rv.ID, rv.ProductID, rv.CustomerID, rv.Rating, rv.Comment, rv.IsVerifiedPurchase,
		rv.ReviewedAt, rv.CreatedAt, rv.UpdatedAt,
	}
}

func sampleReview() domain.Review {
	return domain.Review{
		ID:         1,
		ProductID:  10,
		CustomerID: 20,
		Rating:     5,
		Comment:    strPtr("Excelente producto, muy satisfecho con la compra."),
		ReviewedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

func TestPostgres_UpsertInsertsNewPair(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	rv := sampleReview()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(int64(10), int64(20)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(10), int64(20), 5, rv.Comment, false, now).
		WillReturnRows(pgxmock.NewRows(reviewColumns).AddRow(reviewRow(rv)...))
	mock.ExpectCommit()

	got, created, err := repo.Upsert(context.Background(), rv)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 5, got.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertUpdatesExistingPair(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	rv := sampleReview()
	rv.Rating = 3
	rv.Comment = strPtr("El producto está bien, pero esperaba más.")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(int64(10), int64(20)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("UPDATE reviews").
		WithArgs(int64(1), 3, rv.Comment, false, now).
		WillReturnRows(pgxmock.NewRows(reviewColumns).AddRow(reviewRow(rv)...))
	mock.ExpectCommit()

	got, created, err := repo.Upsert(context.Background(), rv)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 3, got.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertLostRaceSurfacesConstraintViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	rv := sampleReview()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(int64(10), int64(20)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(10), int64(20), 5, rv.Comment, false, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: domain.ReviewPairConstraint})
	mock.ExpectRollback()

	_, _, err := repo.Upsert(context.Background(), rv)
	require.Error(t, err)
	assert.True(t, domain.IsConstraint(err, domain.ReviewPairConstraint))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertMissingParent(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	rv := sampleReview()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM reviews").
		WithArgs(int64(10), int64(20)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(10), int64(20), 5, rv.Comment, false, now).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reviews_customer_id_fkey"})
	mock.ExpectRollback()

	_, _, err := repo.Upsert(context.Background(), rv)

	var re *domain.ReferentialError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "customer_id", re.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListByProduct(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	first := sampleReview()
	second := sampleReview()
	second.ID = 2
	second.CustomerID = 21
	second.Comment = nil
	mock.ExpectQuery("FROM reviews WHERE product_id").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(reviewColumns).
			AddRow(reviewRow(first)...).
			AddRow(reviewRow(second)...))

	list, err := repo.ListByProduct(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListByCustomerEmpty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	mock.ExpectQuery("FROM reviews WHERE customer_id").
		WithArgs(int64(20)).
		WillReturnRows(pgxmock.NewRows(reviewColumns))

	list, err := repo.ListByCustomer(context.Background(), 20)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Summary(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	mock.ExpectQuery("SELECT AVG").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(floatPtr(3.5), 4))

	s, err := repo.Summary(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, s.AverageRating)
	assert.Equal(t, 3.5, *s.AverageRating)
	assert.Equal(t, 4, s.ReviewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SummaryNoReviews(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	mock.ExpectQuery("SELECT AVG").
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow((*float64)(nil), 0))

	s, err := repo.Summary(context.Background(), 11)
	require.NoError(t, err)
	assert.Nil(t, s.AverageRating)
	assert.Equal(t, 0, s.ReviewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPostgres(mock, nil)

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 3)

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "review", nf.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
