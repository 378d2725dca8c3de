// Package classes provides the PostgreSQL-backed repository for the root
// level of the catalog hierarchy.
package classes

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/models"
	"github.com/mkarpovs/studynotes/internal/server/repositories/sqlerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Class, error) {
	query := `SELECT id, name FROM classes ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []*models.Class
	for rows.Next() {
		var item models.Class
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Class, error) {
	query := `SELECT id, name FROM classes WHERE id = $1`

	class := &models.Class{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&class.ID, &class.Name)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return class, nil
}

func (r *PostgresRepository) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	query :=
		`INSERT INTO classes (name)
         VALUES ($1)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, class.Name).Scan(&class.ID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return class, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return 0, sqlerr.Map(err)
	}
	return res.RowsAffected()
}
