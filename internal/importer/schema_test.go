package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestPatchSchema_AddsMissingColumnAndResetsSequence(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`(?i)information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?i)information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`ALTER TABLE "exercises" ADD "url"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER SEQUENCE exercises_id_seq RESTART WITH 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	New(db, &fakeExercises{}, nil, nil).PatchSchema(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchSchema_FailuresAreLoggedOnly(t *testing.T) {
	db, mock := newMockDB(t)
	core, logs := observer.New(zapcore.WarnLevel)

	mock.ExpectQuery(`(?i)information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?i)information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`ALTER SEQUENCE`).WillReturnError(errors.New("permission denied"))

	New(db, &fakeExercises{}, nil, zap.New(core)).PatchSchema(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "reset id sequence failed", logs.All()[0].Message)
}
