// Package semesters provides the PostgreSQL-backed repository for the second
// level of the catalog hierarchy. Reads join the parent class name.
package semesters

import (
	"context"
	"database/sql"

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

func (r *PostgresRepository) List(ctx context.Context, classID string) ([]*models.Semester, error) {
	query := `
		SELECT s.id, s.name, s.class_id, c.name
		FROM semesters s
		LEFT JOIN classes c ON c.id = s.class_id
		WHERE $1 = '' OR s.class_id::text = $1
		ORDER BY c.name, s.name
		`

	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []*models.Semester
	for rows.Next() {
		var item models.Semester
		var className sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.ClassID, &className); err != nil {
			return nil, err
		}
		item.ClassName = className.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Semester, error) {
	query := `
		SELECT s.id, s.name, s.class_id, c.name
		FROM semesters s
		LEFT JOIN classes c ON c.id = s.class_id
		WHERE s.id = $1
		`

	item := &models.Semester{}
	var className sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &item.ClassID, &className)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	item.ClassName = className.String
	return item, nil
}

// Create inserts a semester. A class_id that does not resolve to an existing
// class violates the FK constraint and surfaces as common.ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	query :=
		`INSERT INTO semesters (name, class_id)
         VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, semester.Name, semester.ClassID).Scan(&semester.ID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return semester, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return 0, sqlerr.Map(err)
	}
	return res.RowsAffected()
}
