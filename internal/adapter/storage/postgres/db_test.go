package postgres

import (
	"context"
	"errors"
	"testing"

	"qr-slot-allocator/config"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS qr_slots").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied for schema public"))

	err = EnsureSchema(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying schema")
}

func TestSchema_MatchesRepositories(t *testing.T) {
	for _, col := range slotColumnNames() {
		assert.Contains(t, schemaSQL, col)
	}
	assert.Contains(t, schemaSQL, "PRIMARY KEY (event_id, slot_id)")
	assert.Contains(t, schemaSQL, "daily_count <= max_daily_count")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS audit_logs")
}

func TestNewPool_InvalidConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "allocator",
		DBName:  "qr_allocator",
		SSLMode: "sometimes",
	}

	pool, err := NewPool(context.Background(), cfg, zerolog.Nop())
	assert.Nil(t, pool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing database config")
}
