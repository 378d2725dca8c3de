package models

// Class is the root of the catalog hierarchy.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Semester belongs to exactly one Class. ClassName is populated by a
// read-time join and is empty when the parent row is gone mid-cascade.
type Semester struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name,omitempty"`
}

// Subject belongs to exactly one Semester.
type Subject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SemesterID   string `json:"semester_id"`
	SemesterName string `json:"semester_name,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	ClassName    string `json:"class_name,omitempty"`
}
