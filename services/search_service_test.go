package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestSearchRejectsShortQueryBeforeDatabase(t *testing.T) {
	// A nil db proves the length check runs before any query
	svc := NewSearchService(nil)

	for _, q := range []string{"", "a", " a ", "  "} {
		results, err := svc.Search(q, "")
		assert.ErrorIs(t, err, ErrQueryTooShort, "query %q", q)
		assert.Nil(t, results)
	}
}

func TestSearchQueriesAllBucketsByDefault(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSearchService(db)

	empty := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }
	mock.ExpectQuery(`SELECT (.+) FROM "colleges"`).WillReturnRows(empty())
	mock.ExpectQuery(`SELECT (.+) FROM "pages"`).WillReturnRows(empty())
	mock.ExpectQuery(`SELECT (.+) FROM "courses"`).WillReturnRows(empty())
	mock.ExpectQuery(`SELECT (.+) FROM "faculty"`).WillReturnRows(empty())

	results, err := svc.Search("engineering", "")
	require.NoError(t, err)
	require.NotNil(t, results)

	// Buckets are always present, never nil
	assert.NotNil(t, results.Colleges)
	assert.NotNil(t, results.Pages)
	assert.NotNil(t, results.Courses)
	assert.NotNil(t, results.Faculty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTypeFilterQueriesOneBucket(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSearchService(db)

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "B.Tech Computer Science")
	mock.ExpectQuery(`SELECT (.+) FROM "courses"`).WillReturnRows(rows)

	results, err := svc.Search("computer", "courses")
	require.NoError(t, err)
	require.Len(t, results.Courses, 1)
	assert.Equal(t, "B.Tech Computer Science", results.Courses[0].Name)
	assert.Empty(t, results.Colleges)
	assert.Empty(t, results.Pages)
	assert.Empty(t, results.Faculty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
