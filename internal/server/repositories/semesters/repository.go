package semesters

import (
	"context"

	"github.com/mkarpovs/studynotes/internal/server/models"
)

type Repository interface {
	// List returns semesters with the parent class name populated. classID
	// filters by parent; an empty classID lists all semesters.
	List(ctx context.Context, classID string) ([]*models.Semester, error)
	Get(ctx context.Context, id string) (*models.Semester, error)
	Create(ctx context.Context, semester *models.Semester) (*models.Semester, error)
	Delete(ctx context.Context, id string) (int64, error)
}
