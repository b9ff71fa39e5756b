package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bizprofile/internal/apperror"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGORMCustomerRepository_UpdateColumnQuotesIdentifier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGORMCustomerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET "priority"=$1 WHERE owner_id = $2 AND id = $3`)).
		WithArgs(int16(4), int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateColumn(context.Background(), 1, 9, "priority", int16(4)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMCustomerRepository_ZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGORMCustomerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET "email"=$1 WHERE owner_id = $2 AND id = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateColumn(context.Background(), 1, 9, "email", "x@example.com")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customers" WHERE owner_id = $1 AND id = $2`)).
		WithArgs(int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Delete(context.Background(), 1, 9)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMCustomerRepository_DriverErrorIsDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGORMCustomerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customers"`)).
		WillReturnError(errors.New("connection reset by peer"))

	err := repo.Delete(context.Background(), 1, 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrDatabase))
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestGORMProfileRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGORMProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
