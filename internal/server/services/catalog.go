package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mkarpovs/studynotes/internal/common"
	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/blobstore"
	"github.com/mkarpovs/studynotes/internal/server/models"
	"github.com/mkarpovs/studynotes/internal/server/repositories/repomanager"
)

// CatalogService implements CRUD over the class/semester/subject levels of
// the hierarchy. Parent existence is enforced by the schema's foreign keys;
// a create with a dangling parent reference comes back as ErrorValidation.
//
// Deletes cascade: removing a class removes its semesters, their subjects,
// and their notes in one transaction, then removes the orphaned note blobs
// best-effort.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store) *CatalogService {
	return &CatalogService{db: db, repomanager: m, blobs: blobs}
}

func (s *CatalogService) ListClasses(ctx context.Context) ([]*models.Class, error) {
	return s.repomanager.Classes(s.db).List(ctx)
}

func (s *CatalogService) CreateClass(ctx context.Context, name string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Classes(s.db).Create(ctx, &models.Class{Name: name})
}

// DeleteClass removes a class and everything beneath it. Deleting a missing
// id is not an error.
func (s *CatalogService) DeleteClass(ctx context.Context, id string) error {
	return s.cascadeDelete(ctx, id,
		func(tx dbx.DBTX) namesFunc { return s.repomanager.Notes(tx).StoredNamesForClass },
		func(tx dbx.DBTX) deleteFunc { return s.repomanager.Classes(tx).Delete },
	)
}

func (s *CatalogService) ListSemesters(ctx context.Context, classID string) ([]*models.Semester, error) {
	return s.repomanager.Semesters(s.db).List(ctx, classID)
}

func (s *CatalogService) CreateSemester(ctx context.Context, name, classID string) (*models.Semester, error) {
	name = strings.TrimSpace(name)
	if name == "" || classID == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Semesters(s.db)
	created, err := repo.Create(ctx, &models.Semester{Name: name, ClassID: classID})
	if err != nil {
		return nil, err
	}
	// re-read to populate the parent class name
	full, err := repo.Get(ctx, created.ID)
	if err != nil {
		// the row exists; returning it un-joined beats failing the create
		return created, nil
	}
	return full, nil
}

func (s *CatalogService) DeleteSemester(ctx context.Context, id string) error {
	return s.cascadeDelete(ctx, id,
		func(tx dbx.DBTX) namesFunc { return s.repomanager.Notes(tx).StoredNamesForSemester },
		func(tx dbx.DBTX) deleteFunc { return s.repomanager.Semesters(tx).Delete },
	)
}

func (s *CatalogService) ListSubjects(ctx context.Context, semesterID string) ([]*models.Subject, error) {
	return s.repomanager.Subjects(s.db).List(ctx, semesterID)
}

func (s *CatalogService) CreateSubject(ctx context.Context, name, semesterID string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" || semesterID == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Subjects(s.db)
	created, err := repo.Create(ctx, &models.Subject{Name: name, SemesterID: semesterID})
	if err != nil {
		return nil, err
	}
	full, err := repo.Get(ctx, created.ID)
	if err != nil {
		return created, nil
	}
	return full, nil
}

func (s *CatalogService) DeleteSubject(ctx context.Context, id string) error {
	return s.cascadeDelete(ctx, id,
		func(tx dbx.DBTX) namesFunc { return s.repomanager.Notes(tx).StoredNamesForSubject },
		func(tx dbx.DBTX) deleteFunc { return s.repomanager.Subjects(tx).Delete },
	)
}

type (
	namesFunc  func(ctx context.Context, id string) ([]string, error)
	deleteFunc func(ctx context.Context, id string) (int64, error)
)

// cascadeDelete collects the blob names of every note under id, deletes the
// row (the schema cascades the child rows), and removes the blobs after the
// transaction commits. Blob removal is best-effort: a failed removal leaves
// a stray file, never a dangling record.
func (s *CatalogService) cascadeDelete(
	ctx context.Context,
	id string,
	storedNames func(tx dbx.DBTX) namesFunc,
	deleteRow func(tx dbx.DBTX) deleteFunc,
) error {
	var blobNames []string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		names, err := storedNames(tx)(ctx, id)
		if err != nil {
			return err
		}
		blobNames = names

		if _, err := deleteRow(tx)(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}

	for _, name := range blobNames {
		_ = s.blobs.Remove(ctx, name)
	}
	return nil
}
