package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

const columns = `id, owner_id, title, description, link, technologies, image, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	rec := &models.Project{}
	var technologies []byte
	if err := s.Scan(&rec.ID, &rec.Owner, &rec.Title, &rec.Description, &rec.Link, &technologies, &rec.Image, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Technologies = []string{}
	if len(technologies) > 0 {
		if err := json.Unmarshal(technologies, &rec.Technologies); err != nil {
			return nil, fmt.Errorf("decode technologies: %w", err)
		}
	}
	return rec, nil
}

func encodeTechnologies(t []string) (string, error) {
	if t == nil {
		t = []string{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM projects WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Project) (*models.Project, error) {
	technologies, err := encodeTechnologies(rec.Technologies)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO projects (owner_id, title, description, link, technologies, image)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query, rec.Owner, rec.Title, rec.Description, rec.Link, technologies, rec.Image).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + columns + ` FROM projects WHERE id = $1 FOR UPDATE`
	return r.one(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Project) (*models.Project, error) {
	technologies, err := encodeTechnologies(rec.Technologies)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE projects
		 SET title = $2, description = $3, link = $4, technologies = $5, image = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return r.one(r.db.QueryRowContext(ctx, query, rec.ID, rec.Title, rec.Description, rec.Link, technologies, rec.Image))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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

func (r *PostgresRepository) one(row *sql.Row) (*models.Project, error) {
	rec, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}
