package settings

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/market-notifier/internal/model"
)

var columns = []string{
	"user_id", "notifications_enabled", "email_enabled", "email",
	"chat_a_enabled", "chat_a_webhook_url", "chat_b_enabled", "chat_b_webhook_url",
}

var (
	selectQuery = regexp.QuoteMeta(`WHERE s.user_id = $1;`)
	insertQuery = regexp.QuoteMeta(`INSERT INTO user_channel_settings (`)
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func defaultRow(userID int64) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(userID, true, true, "user@example.com", false, "", false, "")
}

func TestGetOrCreateSettings_Existing(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(selectQuery).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, true, false, "user@example.com", true, "https://hooks.example.com/a", false, ""))

	s, err := repo.GetOrCreateSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, s.ChatAEnabled)
	assert.Equal(t, "https://hooks.example.com/a", s.ChatAWebhookURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSettings_CreatesDefaults(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(selectQuery).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectExec(insertQuery).
		WithArgs(int64(5), true, true, false, "", false, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectQuery).WithArgs(int64(5)).WillReturnRows(defaultRow(5))

	s, err := repo.GetOrCreateSettings(context.Background(), 5)
	require.NoError(t, err)

	want := model.DefaultSettings(5)
	want.EmailAddress = "user@example.com"
	assert.Equal(t, want, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSettings_DuplicateKeyRace(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(selectQuery).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectExec(insertQuery).
		WithArgs(int64(5), true, true, false, "", false, "").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectQuery(selectQuery).WithArgs(int64(5)).WillReturnRows(defaultRow(5))

	s, err := repo.GetOrCreateSettings(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, s.NotificationsEnabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSettings_InsertFails(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(selectQuery).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectExec(insertQuery).WillReturnError(errors.New("connection refused"))

	_, err := repo.GetOrCreateSettings(context.Background(), 5)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSettingsExist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettings_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(selectQuery).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetSettings(context.Background(), 9)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
