// Package notes provides the PostgreSQL-backed repository for uploaded note
// metadata. Listing order is uploaded_at descending, id as a tiebreaker, so
// equal timestamps still produce a stable newest-first sequence.
package notes

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

const selectNote = `
	SELECT n.id, n.title, n.subject_id, n.stored_name, n.original_name, n.uploaded_at,
	       sub.name, sem.name, c.name
	FROM notes n
	LEFT JOIN subjects sub ON sub.id = n.subject_id
	LEFT JOIN semesters sem ON sem.id = sub.semester_id
	LEFT JOIN classes c ON c.id = sem.class_id
	`

func (r *PostgresRepository) List(ctx context.Context, subjectID string) ([]*models.Note, error) {
	query := selectNote + `
		WHERE $1 = '' OR n.subject_id::text = $1
		ORDER BY n.uploaded_at DESC, n.id DESC
		`

	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		item, err := scanNote(rows.Scan)
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

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	query := selectNote + `WHERE n.id = $1`

	item, err := scanNote(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	return item, nil
}

// Create inserts note metadata. The blob must already exist in the file
// store; a subject_id that does not resolve surfaces as ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (title, subject_id, stored_name, original_name)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.SubjectID, note.Filename, note.OriginalName).Scan(&note.ID, &note.UploadedAt)

	if err != nil {
		return nil, sqlerr.Map(err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return 0, sqlerr.Map(err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) StoredNamesForSubject(ctx context.Context, subjectID string) ([]string, error) {
	query := `SELECT stored_name FROM notes WHERE subject_id = $1`
	return r.storedNames(ctx, query, subjectID)
}

func (r *PostgresRepository) StoredNamesForSemester(ctx context.Context, semesterID string) ([]string, error) {
	query := `
		SELECT n.stored_name
		FROM notes n
		JOIN subjects sub ON sub.id = n.subject_id
		WHERE sub.semester_id = $1
		`
	return r.storedNames(ctx, query, semesterID)
}

func (r *PostgresRepository) StoredNamesForClass(ctx context.Context, classID string) ([]string, error) {
	query := `
		SELECT n.stored_name
		FROM notes n
		JOIN subjects sub ON sub.id = n.subject_id
		JOIN semesters sem ON sem.id = sub.semester_id
		WHERE sem.class_id = $1
		`
	return r.storedNames(ctx, query, classID)
}

func (r *PostgresRepository) storedNames(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, sqlerr.Map(err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanNote(scan func(dest ...any) error) (*models.Note, error) {
	var item models.Note
	var subjectName, semesterName, className sql.NullString
	if err := scan(
		&item.ID, &item.Title, &item.SubjectID, &item.Filename, &item.OriginalName, &item.UploadedAt,
		&subjectName, &semesterName, &className,
	); err != nil {
		return nil, err
	}
	item.SubjectName = subjectName.String
	item.SemesterName = semesterName.String
	item.ClassName = className.String
	return &item, nil
}
