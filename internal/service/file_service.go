package service

import (
	"log"
	"os"
	"strings"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"

	"github.com/google/uuid"
)

// Upload describes a file already written to the upload directory by
// the HTTP layer.
type Upload struct {
	Name     string
	Path     string
	MimeType string
	Size     int64
}

type FileService interface {
	Attach(modelName string, documentID uuid.UUID, uploads []Upload, userID string) ([]model.File, error)
	FilesByDocument(modelName string, documentID uuid.UUID) ([]model.File, error)
	DeleteByDocument(modelName string, documentID uuid.UUID) error
}

type fileService struct {
	fileRepo repository.FileRepository
}

func NewFileService(fileRepo repository.FileRepository) FileService {
	return &fileService{fileRepo: fileRepo}
}

// classifyMime maps a MIME type to the coarse file type buckets.
func classifyMime(mimeType string) model.FileType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return model.FileImage
	case mimeType == "application/pdf":
		return model.FilePDF
	case strings.Contains(mimeType, "spreadsheet"), strings.Contains(mimeType, "excel"), mimeType == "text/csv":
		return model.FileSpreadsheet
	case strings.HasPrefix(mimeType, "text/"), strings.Contains(mimeType, "word"), strings.Contains(mimeType, "document"):
		return model.FileDocument
	default:
		return model.FileOther
	}
}

func (s *fileService) Attach(modelName string, documentID uuid.UUID, uploads []Upload, userID string) ([]model.File, error) {
	files := make([]model.File, 0, len(uploads))
	for _, up := range uploads {
		file := model.File{
			Name:     up.Name,
			Path:     up.Path,
			MimeType: up.MimeType,
			Size:     up.Size,
			FileType: classifyMime(up.MimeType),
		}
		file.CreatedBy = userID
		file.UpdatedBy = userID

		assoc := model.FileAssociation{
			AssociatedModel: modelName,
			DocumentID:      documentID,
		}
		if err := s.fileRepo.Create(&file, &assoc); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (s *fileService) FilesByDocument(modelName string, documentID uuid.UUID) ([]model.File, error) {
	return s.fileRepo.FindByDocument(modelName, documentID)
}

// DeleteByDocument removes a document's attachment records and then
// their files from disk. A missing disk file is logged, not fatal.
func (s *fileService) DeleteByDocument(modelName string, documentID uuid.UUID) error {
	files, err := s.fileRepo.DeleteByDocument(modelName, documentID)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove file %s: %v", f.Path, err)
		}
	}
	return nil
}
