// Package subjects provides the PostgreSQL-backed repository for the third
// level of the catalog hierarchy. Reads join semester and class names.
package subjects

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

func (r *PostgresRepository) List(ctx context.Context, semesterID string) ([]*models.Subject, error) {
	query := `
		SELECT sub.id, sub.name, sub.semester_id, sem.name, sem.class_id, c.name
		FROM subjects sub
		LEFT JOIN semesters sem ON sem.id = sub.semester_id
		LEFT JOIN classes c ON c.id = sem.class_id
		WHERE $1 = '' OR sub.semester_id::text = $1
		ORDER BY c.name, sem.name, sub.name
		`

	rows, err := r.db.QueryContext(ctx, query, semesterID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []*models.Subject
	for rows.Next() {
		item, err := scanSubject(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Subject, error) {
	query := `
		SELECT sub.id, sub.name, sub.semester_id, sem.name, sem.class_id, c.name
		FROM subjects sub
		LEFT JOIN semesters sem ON sem.id = sub.semester_id
		LEFT JOIN classes c ON c.id = sem.class_id
		WHERE sub.id = $1
		`

	item, err := scanSubject(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return item, nil
}

// Create inserts a subject. A semester_id that does not resolve to an
// existing semester surfaces as common.ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query :=
		`INSERT INTO subjects (name, semester_id)
         VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, subject.Name, subject.SemesterID).Scan(&subject.ID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return subject, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return 0, sqlerr.Map(err)
	}
	return res.RowsAffected()
}

func scanSubject(scan func(dest ...any) error) (*models.Subject, error) {
	var item models.Subject
	var semesterName, classID, className sql.NullString
	if err := scan(&item.ID, &item.Name, &item.SemesterID, &semesterName, &classID, &className); err != nil {
		return nil, err
	}
	item.SemesterName = semesterName.String
	item.ClassID = classID.String
	item.ClassName = className.String
	return &item, nil
}
