package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mkarpovs/studynotes/internal/common"
	"github.com/mkarpovs/studynotes/internal/server/blobstore"
	"github.com/mkarpovs/studynotes/internal/server/models"
	"github.com/mkarpovs/studynotes/internal/server/repositories/repomanager"
)

// NoteService manages uploaded notes: blob first, metadata second, so a
// stored row always points at an existing blob at creation time.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store) *NoteService {
	return &NoteService{db: db, repomanager: m, blobs: blobs}
}

// List returns notes newest-first with subject/semester/class names and the
// public file path populated. subjectID filters by parent; empty lists all.
func (s *NoteService) List(ctx context.Context, subjectID string) ([]*models.Note, error) {
	result, err := s.repomanager.Notes(s.db).List(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	for _, n := range result {
		n.FilePath = s.blobs.PublicPath(n.Filename)
	}
	return result, nil
}

// Create stores the upload and inserts the metadata record. If the insert
// fails the stored blob is removed again so no unreferenced file survives a
// rejected create.
func (s *NoteService) Create(ctx context.Context, title, subjectID string, upload io.Reader, originalName string) (*models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" || subjectID == "" || originalName == "" {
		return nil, common.ErrorValidation
	}

	stored, err := s.blobs.Save(ctx, upload, originalName)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	note := &models.Note{
		Title:        title,
		SubjectID:    subjectID,
		Filename:     stored.Name,
		OriginalName: originalName,
	}

	note, err = s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		_ = s.blobs.Remove(ctx, stored.Name)
		return nil, err
	}

	note.FilePath = stored.PublicPath
	return s.populate(ctx, note)
}

// Delete removes the metadata record and then the backing blob. A missing
// record or a missing blob is not an error.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	repo := s.repomanager.Notes(s.db)

	note, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}

	if _, err := repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.blobs.Remove(ctx, note.Filename)
	return nil
}

// populate re-reads the note to pick up the joined parent names.
func (s *NoteService) populate(ctx context.Context, note *models.Note) (*models.Note, error) {
	full, err := s.repomanager.Notes(s.db).Get(ctx, note.ID)
	if err != nil {
		// the record exists; returning it un-joined beats failing the create
		return note, nil
	}
	full.FilePath = s.blobs.PublicPath(full.Filename)
	return full, nil
}
