package models

// FileReferenceModel tracks uploaded objects and whether a document ended up
// referencing them. Uploads start as pending and are marked active when a
// blog or draft is saved with that URL; stale pending rows are orphans.
type FileReferenceModel struct {
	Base
	FileURL  string `json:"file_url"  gorm:"index;not null"`
	FileName string `json:"file_name"`
	Status   string `json:"status"    gorm:"index;default:'pending'"` // pending | active
}

func (FileReferenceModel) TableName() string { return "file_references" }
