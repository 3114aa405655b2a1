package subscriber

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func TestByCompany(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorite_companies`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2))

	ids, err := repo.ByCompany(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByIndicator(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE base_name = $1 AND country = $2`)).
		WithArgs("CPI", "US").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	ids, err := repo.ByIndicator(context.Background(), "CPI", "US")
	assert.NoError(t, err)
	assert.Empty(t, ids)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorite_indicators`)).
		WithArgs("CPI", "US").
		WillReturnError(errors.New("timeout"))

	_, err = repo.ByIndicator(context.Background(), "CPI", "US")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
