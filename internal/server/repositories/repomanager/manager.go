package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/repositories/classes"
	"github.com/mkarpovs/studynotes/internal/server/repositories/notes"
	"github.com/mkarpovs/studynotes/internal/server/repositories/semesters"
	"github.com/mkarpovs/studynotes/internal/server/repositories/subjects"
	"github.com/mkarpovs/studynotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Classes(db dbx.DBTX) classes.Repository
	Semesters(db dbx.DBTX) semesters.Repository
	Subjects(db dbx.DBTX) subjects.Repository
	Notes(db dbx.DBTX) notes.Repository
}
