package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileType string

const (
	FileImage       FileType = "image"
	FilePDF         FileType = "pdf"
	FileSpreadsheet FileType = "spreadsheet"
	FileDocument    FileType = "document"
	FileOther       FileType = "other"
)

// File stores metadata for an uploaded attachment. The binary itself
// lives on disk under the configured upload directory.
type File struct {
	BaseModel
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Path        string   `gorm:"type:varchar(512);not null" json:"path"`
	MimeType    string   `gorm:"type:varchar(100);not null" json:"mime_type"`
	Size        int64    `gorm:"not null" json:"size"`
	FileType    FileType `gorm:"type:varchar(20);not null" json:"file_type"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for GORM
func (File) TableName() string {
	return "files"
}

// FileAssociation links a file to the document it belongs to,
// e.g. (associated_model="StoreProduct", document_id=<product id>).
type FileAssociation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FileID          uuid.UUID `gorm:"type:uuid;not null;index" json:"file_id"`
	File            *File     `gorm:"foreignKey:FileID" json:"file,omitempty"`
	AssociatedModel string    `gorm:"type:varchar(100);not null;index" json:"associated_model"`
	DocumentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	FieldName       string    `gorm:"type:varchar(100)" json:"field_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FileAssociation) TableName() string {
	return "file_associations"
}

func (a *FileAssociation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
