package models

import "time"

// Note is an uploaded document attached to a Subject. Filename is the stored
// blob name; OriginalName is the name the client uploaded it under. FilePath
// is derived from the blob store at read time and never persisted.
type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SubjectID    string    `json:"subject_id"`
	SubjectName  string    `json:"subject_name,omitempty"`
	SemesterName string    `json:"semester_name,omitempty"`
	ClassName    string    `json:"class_name,omitempty"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	FilePath     string    `json:"file_path,omitempty"`
}
