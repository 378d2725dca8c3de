package notes

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/server/models"
)

type Repository interface {
	// List returns notes newest-upload-first with subject, semester, and
	// class names populated. subjectID filters by parent; empty lists all.
	List(ctx context.Context, subjectID string) ([]*models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) (int64, error)

	// StoredNames returns the blob names of every note under the given
	// ancestor, used to clean up files after a cascading delete.
	StoredNamesForSubject(ctx context.Context, subjectID string) ([]string, error)
	StoredNamesForSemester(ctx context.Context, semesterID string) ([]string, error)
	StoredNamesForClass(ctx context.Context, classID string) ([]string, error)
}
