package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStore_Init(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":1}]`)
		mock.ExpectQuery("SELECT value FROM kv_entries").
			WithArgs("cart").
			WillReturnRows(rows)

		v, ok, err := store.Get(context.Background(), "cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, v)
	})

	t.Run("absent", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_entries").
			WithArgs("wishlist").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, ok, err := store.Get(context.Background(), "wishlist")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_entries").
			WillReturnError(errors.New("db error"))

		_, _, err := store.Get(context.Background(), "cart")
		assert.Error(t, err)
	})
}

func TestSQLStore_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("promoCode", "SUMMER10").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Set(context.Background(), "promoCode", "SUMMER10"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("promoCode").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Remove(context.Background(), "promoCode"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
