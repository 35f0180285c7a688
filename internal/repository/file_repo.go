package repository

import (
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository interface {
	Create(file *model.File, assoc *model.FileAssociation) error
	FindByDocument(modelName string, documentID uuid.UUID) ([]model.File, error)
	DeleteByDocument(modelName string, documentID uuid.UUID) ([]model.File, error)
}

type fileRepo struct {
	db *gorm.DB
}

func NewFileRepo(db *gorm.DB) FileRepository {
	return &fileRepo{db}
}

// Create stores the file metadata and its document association together.
func (r *fileRepo) Create(file *model.File, assoc *model.FileAssociation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}
		assoc.FileID = file.ID
		return tx.Create(assoc).Error
	})
}

func (r *fileRepo) FindByDocument(modelName string, documentID uuid.UUID) ([]model.File, error) {
	var files []model.File
	err := r.db.
		Joins("JOIN file_associations ON file_associations.file_id = files.id").
		Where("file_associations.associated_model = ? AND file_associations.document_id = ?", modelName, documentID).
		Find(&files).Error
	return files, err
}

// DeleteByDocument removes a document's associations and file rows,
// returning the removed metadata so the caller can clean up the disk.
func (r *fileRepo) DeleteByDocument(modelName string, documentID uuid.UUID) ([]model.File, error) {
	files, err := r.FindByDocument(modelName, documentID)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("associated_model = ? AND document_id = ?", modelName, documentID).
			Delete(&model.FileAssociation{}).Error; err != nil {
			return err
		}
		for _, f := range files {
			if err := tx.Delete(&model.File{}, "id = ?", f.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return files, err
}
