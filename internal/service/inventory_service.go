package service

import (
	"encoding/json"
	"fmt"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/ws"

	"github.com/google/uuid"
)

// LowStockItem is the trimmed low-stock view used by reports.
type LowStockItem struct {
	Name          string  `json:"name"`
	CurrentStock  float64 `json:"current_stock"`
	MinStockLevel float64 `json:"min_stock_level"`
}

// OutOfStockItem names a product with zero stock.
type OutOfStockItem struct {
	Name string `json:"name"`
}

// InventoryReport summarizes the active catalog.
type InventoryReport struct {
	TotalProducts   int              `json:"total_products"`
	TotalValue      float64          `json:"total_value"`
	LowStockItems   []LowStockItem   `json:"low_stock_items"`
	OutOfStockItems []OutOfStockItem `json:"out_of_stock_items"`
}

type InventoryService interface {
	LowStock() ([]model.StoreProduct, error)
	OutOfStock() ([]model.StoreProduct, error)
	BulkAdjustStock(adjustments []model.StockAdjustment) error
	Restock(id uuid.UUID, quantity float64, newCostPrice, newPricePerUnit *float64, userID string) (*model.StoreProduct, error)
	Report() (*InventoryReport, error)
	ExpectedProfit() (float64, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{productRepo: pRepo, wsHub: hub}
}

// LowStock lists active products at or below their reorder threshold.
func (s *inventoryService) LowStock() ([]model.StoreProduct, error) {
	return s.productRepo.FindLowStock()
}

func (s *inventoryService) OutOfStock() ([]model.StoreProduct, error) {
	return s.productRepo.FindOutOfStock()
}

// BulkAdjustStock applies each adjustment to the matching active
// product. Entries naming missing or retired products are skipped
// without error; application is not transactional across entries.
func (s *inventoryService) BulkAdjustStock(adjustments []model.StockAdjustment) error {
	if len(adjustments) == 0 {
		return fmt.Errorf("%w: adjustments array is required", apperrors.ErrValidation)
	}
	for _, adj := range adjustments {
		if adj.Quantity <= 0 {
			return fmt.Errorf("%w: adjustment quantity must be positive", apperrors.ErrValidation)
		}
		delta := adj.Quantity
		switch adj.Operation {
		case "subtract":
			delta = -adj.Quantity
		case "add":
		default:
			return fmt.Errorf("%w: unknown operation %q", apperrors.ErrValidation, adj.Operation)
		}
		if err := s.productRepo.AdjustStock(adj.ProductID, delta); err != nil {
			return err
		}
	}
	return nil
}

// Restock adds quantity to a product's stock and optionally overwrites
// its cost and unit prices. Retired products can be restocked without
// being reactivated.
func (s *inventoryService) Restock(id uuid.UUID, quantity float64, newCostPrice, newPricePerUnit *float64, userID string) (*model.StoreProduct, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", apperrors.ErrValidation)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	product.CurrentStock += quantity
	if newCostPrice != nil {
		product.CostPrice = *newCostPrice
	}
	if newPricePerUnit != nil {
		product.PricePerUnit = *newPricePerUnit
	}
	product.UpdatedBy = userID

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.broadcastRestock(product, quantity)
	return product, nil
}

func (s *inventoryService) broadcastRestock(product *model.StoreProduct, quantity float64) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "product_restocked",
			"product": map[string]interface{}{
				"id":        product.ID,
				"name":      product.Name,
				"new_stock": product.CurrentStock,
			},
			"message": fmt.Sprintf("Restocked %g units of '%s'", quantity, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

// Report computes catalog totals plus live low/out-of-stock snapshots.
// TotalValue prices stock at cost.
func (s *inventoryService) Report() (*InventoryReport, error) {
	products, err := s.productRepo.FindAllActive()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, err
	}
	outOfStock, err := s.productRepo.FindOutOfStock()
	if err != nil {
		return nil, err
	}

	var totalValue float64
	for _, p := range products {
		totalValue += p.CurrentStock * p.CostPrice
	}

	report := &InventoryReport{
		TotalProducts:   len(products),
		TotalValue:      totalValue,
		LowStockItems:   make([]LowStockItem, 0, len(lowStock)),
		OutOfStockItems: make([]OutOfStockItem, 0, len(outOfStock)),
	}
	for _, p := range lowStock {
		report.LowStockItems = append(report.LowStockItems, LowStockItem{
			Name:          p.Name,
			CurrentStock:  p.CurrentStock,
			MinStockLevel: p.MinStockLevel,
		})
	}
	for _, p := range outOfStock {
		report.OutOfStockItems = append(report.OutOfStockItems, OutOfStockItem{Name: p.Name})
	}
	return report, nil
}

// ExpectedProfit is the forward-looking figure: what selling all
// current stock at current prices would earn.
func (s *inventoryService) ExpectedProfit() (float64, error) {
	return s.productRepo.ExpectedProfit()
}
