package classes

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Class, error)
	Get(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) (*models.Class, error)
	Delete(ctx context.Context, id string) (int64, error)
}
