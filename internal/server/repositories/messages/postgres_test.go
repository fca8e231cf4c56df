package messages

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_CreateAndList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+messages\s*\(name,\s*email,\s*body\)`).
		WithArgs("Ann", "a@x.com", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-1", now))

	msg, err := repo.Create(context.Background(), &models.Message{Name: "Ann", Email: "a@x.com", Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", msg.ID)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*email,\s*body,\s*created_at\s+FROM\s+messages\s+ORDER\s+BY\s+created_at\s+DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "body", "created_at"}).
			AddRow("m-2", "Bob", "b@x.com", "later", now.Add(time.Minute)).
			AddRow("m-1", "Ann", "a@x.com", "hello", now))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m-2", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
