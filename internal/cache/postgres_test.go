// internal/cache/postgres_test.go
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresCache(t *testing.T) (*PostgresCache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresCacheFromDB(db), mock
}

func TestPostgresCache_GetHit(t *testing.T) {
	c, mock := newMockPostgresCache(t)

	resp := sampleResponse()
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data").
		WithArgs(Key("text")).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))

	got, err := c.Get(context.Background(), Key("text"))
	require.NoError(t, err)
	assert.Equal(t, resp, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_GetMiss(t *testing.T) {
	c, mock := newMockPostgresCache(t)

	mock.ExpectQuery("SELECT data").
		WithArgs(Key("missing")).
		WillReturnError(sql.ErrNoRows)

	got, err := c.Get(context.Background(), Key("missing"))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Set(t *testing.T) {
	c, mock := newMockPostgresCache(t)

	mock.ExpectExec("INSERT INTO analysis_cache").
		WithArgs(Key("text"), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := c.Set(context.Background(), Key("text"), sampleResponse(), time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Delete(t *testing.T) {
	c, mock := newMockPostgresCache(t)

	mock.ExpectExec("DELETE FROM analysis_cache").
		WithArgs(Key("text")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.Delete(context.Background(), Key("text")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_CleanExpired(t *testing.T) {
	c, mock := newMockPostgresCache(t)

	mock.ExpectExec("DELETE FROM analysis_cache WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := c.CleanExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
