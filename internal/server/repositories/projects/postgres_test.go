package projects

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var projectColumns = []string{"id", "owner_id", "title", "description", "link", "technologies", "image", "created_at", "updated_at"}

func TestCreate_EncodesTechnologiesAsJSON(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects`).
		WithArgs("owner-1", "Folio", "site", "https://x", `["go","sql"]`, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("p-1", now, now))

	got, err := repo.Create(context.Background(), &models.Project{
		Owner: "owner-1", Title: "Folio", Description: "site", Link: "https://x", Technologies: []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NilTechnologiesBecomesEmptyArray(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects`).
		WithArgs("owner-1", "T", "D", "L", `[]`, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("p-1", now, now))

	_, err := repo.Create(context.Background(), &models.Project{Owner: "owner-1", Title: "T", Description: "D", Link: "L"})
	require.NoError(t, err)
}

func TestListByOwner_DecodesRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(projectColumns).
		AddRow("p-1", "owner-1", "A", "a", "https://a", []byte(`["go"]`), "", now, now).
		AddRow("p-2", "owner-1", "B", "b", "https://b", []byte(`[]`), "img.png", now, now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+projects\s+WHERE\s+owner_id\s*=\s*\$1`).
		WithArgs("owner-1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"go"}, got[0].Technologies)
	assert.Equal(t, []string{}, got[1].Technologies)
	assert.Equal(t, "img.png", got[1].Image)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+projects\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_NoRows_IsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "p-1"), common.ErrorNotFound)
}

func TestDelete_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+projects`).
		WithArgs("p-1").
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "p-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
