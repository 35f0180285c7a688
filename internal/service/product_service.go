package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/ws"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/validator"

	"github.com/google/uuid"
)

// ProductWithFiles is a catalog row plus its attachments.
type ProductWithFiles struct {
	model.StoreProduct
	Files []model.File `json:"files"`
}

type ProductService interface {
	List(params query.Params, filters repository.ProductFilters) ([]ProductWithFiles, int64, int, error)
	Create(req *model.StoreProduct, userID string) (*model.StoreProduct, error)
	GetByID(id uuid.UUID) (*ProductWithFiles, error)
	GetByBarcode(barcode string) (*model.StoreProduct, error)
	Update(id uuid.UUID, req *model.StoreProduct, userID string) (*model.StoreProduct, error)
	SoftDelete(id uuid.UUID, userID string) error
}

type productService struct {
	productRepo repository.ProductRepository
	fileService FileService
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, fileService FileService, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		fileService: fileService,
		wsHub:       hub,
	}
}

func (s *productService) validate(req *model.StoreProduct) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, validator.FirstError(errs))
	}
	if err := req.NormalizeContainerSize(); err != nil {
		return fmt.Errorf("%w: container size is required for container-based products", apperrors.ErrInvalidState)
	}
	return nil
}

// List returns one page of the active catalog with attachments.
func (s *productService) List(params query.Params, filters repository.ProductFilters) ([]ProductWithFiles, int64, int, error) {
	params = params.Normalized(10)
	products, total, err := s.productRepo.Search(params, filters)
	if err != nil {
		return nil, 0, 0, err
	}

	results := make([]ProductWithFiles, 0, len(products))
	for _, p := range products {
		files, err := s.fileService.FilesByDocument("StoreProduct", p.ID)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, ProductWithFiles{StoreProduct: p, Files: files})
	}

	return results, total, query.TotalPages(total, params.Limit), nil
}

func (s *productService) Create(req *model.StoreProduct, userID string) (*model.StoreProduct, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.Barcode != nil && *req.Barcode != "" {
		existing, err := s.productRepo.FindByBarcode(*req.Barcode)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: barcode already in use", apperrors.ErrDuplicate)
		}
	}

	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID

	if err := s.productRepo.Create(req); err != nil {
		return nil, err
	}

	s.broadcastProduct("product_created", req)
	return req, nil
}

func (s *productService) GetByID(id uuid.UUID) (*ProductWithFiles, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	files, err := s.fileService.FilesByDocument("StoreProduct", product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductWithFiles{StoreProduct: *product, Files: files}, nil
}

func (s *productService) GetByBarcode(barcode string) (*model.StoreProduct, error) {
	return s.productRepo.FindByBarcode(barcode)
}

func (s *productService) Update(id uuid.UUID, req *model.StoreProduct, userID string) (*model.StoreProduct, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.MeasurementType = req.MeasurementType
	existing.ContainerSize = req.ContainerSize
	existing.PricePerUnit = req.PricePerUnit
	existing.CostPrice = req.CostPrice
	existing.CurrentStock = req.CurrentStock
	existing.MinStockLevel = req.MinStockLevel
	existing.Supplier = req.Supplier
	existing.Barcode = req.Barcode
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.broadcastProduct("product_updated", existing)
	return existing, nil
}

// SoftDelete retires a product. The row stays for historical sale
// lines; attachments are removed through the file service.
func (s *productService) SoftDelete(id uuid.UUID, userID string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.fileService.DeleteByDocument("StoreProduct", product.ID); err != nil {
		return err
	}

	product.IsActive = false
	product.UpdatedBy = userID
	if err := s.productRepo.Update(product); err != nil {
		return err
	}

	s.broadcastProduct("product_retired", product)
	return nil
}

func (s *productService) broadcastProduct(action string, product *model.StoreProduct) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":            product.ID,
				"name":          product.Name,
				"category":      product.Category,
				"current_stock": product.CurrentStock,
				"is_active":     product.IsActive,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
