package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"path"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/blobstore"
	"github.com/mkarpovs/studynotes/internal/server/models"
	classesrepo "github.com/mkarpovs/studynotes/internal/server/repositories/classes"
	notesrepo "github.com/mkarpovs/studynotes/internal/server/repositories/notes"
	semestersrepo "github.com/mkarpovs/studynotes/internal/server/repositories/semesters"
	subjectsrepo "github.com/mkarpovs/studynotes/internal/server/repositories/subjects"
	usersrepo "github.com/mkarpovs/studynotes/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	listOut []*models.User
	listErr error

	delErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 0, f.delErr
}

type fakeClassesRepo struct {
	createErr error
	delErr    error
}

func (f *fakeClassesRepo) List(ctx context.Context) ([]*models.Class, error) { return nil, nil }
func (f *fakeClassesRepo) Get(ctx context.Context, id string) (*models.Class, error) {
	return nil, nil
}
func (f *fakeClassesRepo) Create(ctx context.Context, c *models.Class) (*models.Class, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = "c-1"
	return c, nil
}
func (f *fakeClassesRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 1, f.delErr
}

type fakeSemestersRepo struct {
	createErr error
	getOut    *models.Semester
	getErr    error
	delErr    error
}

func (f *fakeSemestersRepo) List(ctx context.Context, classID string) ([]*models.Semester, error) {
	return nil, nil
}
func (f *fakeSemestersRepo) Get(ctx context.Context, id string) (*models.Semester, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSemestersRepo) Create(ctx context.Context, s *models.Semester) (*models.Semester, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = "sem-1"
	return s, nil
}
func (f *fakeSemestersRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 1, f.delErr
}

type fakeSubjectsRepo struct {
	createErr error
	getOut    *models.Subject
	getErr    error
	delErr    error
}

func (f *fakeSubjectsRepo) List(ctx context.Context, semesterID string) ([]*models.Subject, error) {
	return nil, nil
}
func (f *fakeSubjectsRepo) Get(ctx context.Context, id string) (*models.Subject, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSubjectsRepo) Create(ctx context.Context, s *models.Subject) (*models.Subject, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = "sub-1"
	return s, nil
}
func (f *fakeSubjectsRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 1, f.delErr
}

type fakeNotesRepo struct {
	listOut []*models.Note
	listErr error

	getOut *models.Note
	getErr error

	createOut *models.Note
	createErr error

	delErr error

	storedNamesOut []string
	storedNamesErr error
}

func (f *fakeNotesRepo) List(ctx context.Context, subjectID string) ([]*models.Note, error) {
	return f.listOut, f.listErr
}
func (f *fakeNotesRepo) Get(ctx context.Context, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	n.ID = "n-1"
	return n, nil
}
func (f *fakeNotesRepo) Delete(ctx context.Context, id string) (int64, error) {
	return 1, f.delErr
}
func (f *fakeNotesRepo) StoredNamesForSubject(ctx context.Context, subjectID string) ([]string, error) {
	return f.storedNamesOut, f.storedNamesErr
}
func (f *fakeNotesRepo) StoredNamesForSemester(ctx context.Context, semesterID string) ([]string, error) {
	return f.storedNamesOut, f.storedNamesErr
}
func (f *fakeNotesRepo) StoredNamesForClass(ctx context.Context, classID string) ([]string, error) {
	return f.storedNamesOut, f.storedNamesErr
}

type fakeRepoManager struct {
	u   *fakeUsersRepo
	c   *fakeClassesRepo
	sem *fakeSemestersRepo
	sub *fakeSubjectsRepo
	n   *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Classes(db dbx.DBTX) classesrepo.Repository     { return m.c }
func (m *fakeRepoManager) Semesters(db dbx.DBTX) semestersrepo.Repository { return m.sem }
func (m *fakeRepoManager) Subjects(db dbx.DBTX) subjectsrepo.Repository   { return m.sub }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository         { return m.n }

// fakeBlobStore records saves and removals in memory.
type fakeBlobStore struct {
	saveErr error

	saved   []string
	removed []string
	content map[string][]byte
}

func (f *fakeBlobStore) Save(ctx context.Context, r io.Reader, originalName string) (*blobstore.StoredFile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	name := "stored-" + originalName
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if f.content == nil {
		f.content = map[string][]byte{}
	}
	f.content[name] = data
	f.saved = append(f.saved, name)
	return &blobstore.StoredFile{Name: name, PublicPath: f.PublicPath(name)}, nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	delete(f.content, name)
	return nil
}

func (f *fakeBlobStore) PublicPath(name string) string {
	return path.Join("/uploads", name)
}

func uploadBody(s string) io.Reader { return bytes.NewBufferString(s) }
