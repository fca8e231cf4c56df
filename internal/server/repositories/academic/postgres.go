package academic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

const columns = `id, owner_id, degree, institution, year, description, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Academic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM academic WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Academic, 0)
	for rows.Next() {
		rec := &models.Academic{}
		if err := rows.Scan(&rec.ID, &rec.Owner, &rec.Degree, &rec.Institution, &rec.Year, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Academic) (*models.Academic, error) {
	query :=
		`INSERT INTO academic (owner_id, degree, institution, year, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, rec.Owner, rec.Degree, rec.Institution, rec.Year, rec.Description).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Academic, error) {
	query := `SELECT ` + columns + ` FROM academic WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Academic) (*models.Academic, error) {
	query :=
		`UPDATE academic
		 SET degree = $2, institution = $3, year = $4, description = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return r.scanOne(r.db.QueryRowContext(ctx, query, rec.ID, rec.Degree, rec.Institution, rec.Year, rec.Description))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM academic WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Academic, error) {
	rec := &models.Academic{}
	err := row.Scan(&rec.ID, &rec.Owner, &rec.Degree, &rec.Institution, &rec.Year, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}
