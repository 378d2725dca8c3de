package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkarpovs/studynotes/internal/common"
	"github.com/mkarpovs/studynotes/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func noteColumns() []string {
	return []string{"id", "title", "subject_id", "stored_name", "original_name", "uploaded_at", "sub_name", "sem_name", "c_name"}
}

func TestList_All(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+n\.id,.*FROM\s+notes\s+n.*LEFT\s+JOIN\s+classes.*WHERE\s+\$1\s*=\s*''\s+OR\s+n\.subject_id::text\s*=\s*\$1\s+ORDER\s+BY\s+n\.uploaded_at\s+DESC,\s*n\.id\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(noteColumns()).
		AddRow("n-2", "Newer", "s-1", "2-x.pdf", "x.pdf", now, "Database", "Semester 1", "BCA").
		AddRow("n-1", "Older", "s-1", "1-y.pdf", "y.pdf", now.Add(-time.Hour), "Database", "Semester 1", "BCA")
	mock.ExpectQuery(q).WithArgs("").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "n-2" || got[1].ID != "n-1" {
		t.Fatalf("unexpected notes: %+v", got)
	}
	if got[0].SubjectName != "Database" || got[0].ClassName != "BCA" {
		t.Fatalf("join names not populated: %+v", got[0])
	}
}

func TestList_FilterBySubject(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+n\.id,.*WHERE\s+\$1\s*=\s*''\s+OR\s+n\.subject_id::text\s*=\s*\$1.*$`

	rows := sqlmock.NewRows(noteColumns()).
		AddRow("n-1", "Intro", "s-1", "1-a.pdf", "a.pdf", time.Now(), "Database", "Semester 1", "BCA")
	mock.ExpectQuery(q).WithArgs("s-1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].SubjectID != "s-1" {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestList_OrphanJoinNamesAreEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+n\.id,.*ORDER\s+BY\s+n\.uploaded_at\s+DESC.*$`

	rows := sqlmock.NewRows(noteColumns()).
		AddRow("n-1", "Intro", "s-1", "1-a.pdf", "a.pdf", time.Now(), nil, nil, nil)
	mock.ExpectQuery(q).WithArgs("").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got[0].SubjectName != "" || got[0].SemesterName != "" || got[0].ClassName != "" {
		t.Fatalf("expected empty join names, got %+v", got[0])
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+n\.id,.*WHERE\s+n\.id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+notes\s*\(title,\s*subject_id,\s*stored_name,\s*original_name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*uploaded_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("n-1", now)
	mock.ExpectQuery(q).
		WithArgs("Intro", "s-1", "1-a.pdf", "a.pdf").
		WillReturnRows(rows)

	n := &models.Note{Title: "Intro", SubjectID: "s-1", Filename: "1-a.pdf", OriginalName: "a.pdf"}
	got, err := repo.Create(context.Background(), n)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "n-1" || !got.UploadedAt.Equal(now) {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestCreate_BadSubject(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+notes\s*.*RETURNING\s+id,\s*uploaded_at\s*$`

	mock.ExpectQuery(q).
		WithArgs("Intro", "ghost", "1-a.pdf", "a.pdf").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	_, err := repo.Create(context.Background(), &models.Note{Title: "Intro", SubjectID: "ghost", Filename: "1-a.pdf", OriginalName: "a.pdf"})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestStoredNamesForClass(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+n\.stored_name\s+FROM\s+notes\s+n\s+JOIN\s+subjects\s+sub.*JOIN\s+semesters\s+sem.*WHERE\s+sem\.class_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"stored_name"}).
		AddRow("1-a.pdf").
		AddRow("2-b.pdf")
	mock.ExpectQuery(q).WithArgs("c-1").WillReturnRows(rows)

	got, err := repo.StoredNamesForClass(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("StoredNamesForClass error: %v", err)
	}
	if len(got) != 2 || got[0] != "1-a.pdf" || got[1] != "2-b.pdf" {
		t.Fatalf("unexpected names: %v", got)
	}
}

func TestDelete_ReportsRowsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), "n-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("unexpected rows affected: %d", affected)
	}
}
