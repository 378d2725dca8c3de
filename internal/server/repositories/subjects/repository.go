package subjects

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/server/models"
)

type Repository interface {
	// List returns subjects with semester and class names populated.
	// semesterID filters by parent; empty lists all subjects.
	List(ctx context.Context, semesterID string) ([]*models.Subject, error)
	Get(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Delete(ctx context.Context, id string) (int64, error)
}
