package service

import (
	"encoding/json"
	"fmt"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/ws"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalesService interface {
	RecordSale(req *model.RecordSaleRequest, sellerID, sellerName string) (*model.SalesTransaction, error)
	ListSales(params query.Params, filters repository.SaleFilters) ([]model.SalesTransaction, int64, int, error)
	GetSaleByID(id uuid.UUID) (*model.SalesTransaction, error)
}

type salesService struct {
	productRepo repository.ProductRepository
	salesRepo   repository.SalesRepository
	wsHub       *ws.Hub
}

func NewSalesService(pRepo repository.ProductRepository, sRepo repository.SalesRepository, hub *ws.Hub) SalesService {
	return &salesService{
		productRepo: pRepo,
		salesRepo:   sRepo,
		wsHub:       hub,
	}
}

type lowStockAlert struct {
	Name          string  `json:"name"`
	CurrentStock  float64 `json:"current_stock"`
	MinStockLevel float64 `json:"min_stock_level"`
}

// RecordSale reconciles a multi-line sale against current stock inside
// one database transaction. Lines are processed in caller order with
// sequential decrements, so a product repeated in a later line sees the
// stock left by the earlier one. Any line failure rolls the whole sale
// back; no partial decrements survive.
func (s *salesService) RecordSale(req *model.RecordSaleRequest, sellerID, sellerName string) (*model.SalesTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, validator.FirstError(errs))
	}

	var sale *model.SalesTransaction
	var alerts []lowStockAlert

	err := s.salesRepo.InTransaction(func(tx *gorm.DB) error {
		var totalAmount, totalCost float64
		items := make([]model.SalesItem, 0, len(req.Items))
		alerts = alerts[:0]

		for _, line := range req.Items {
			product, err := s.productRepo.FindActiveByID(tx, line.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", line.ProductID, err)
			}

			if product.CurrentStock < line.Quantity {
				return &apperrors.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.CurrentStock,
					Requested:   line.Quantity,
				}
			}

			// The guard re-checks current_stock >= quantity at UPDATE
			// time, closing the window between check and decrement.
			ok, err := s.productRepo.DecrementStock(tx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &apperrors.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.CurrentStock,
					Requested:   line.Quantity,
				}
			}

			lineTotal := product.PricePerUnit * line.Quantity
			items = append(items, model.SalesItem{
				ProductID:       product.ID,
				Quantity:        line.Quantity,
				UnitPrice:       product.PricePerUnit,
				TotalPrice:      lineTotal,
				MeasurementType: product.MeasurementType,
				ContainerSize:   product.ContainerSize,
			})
			totalAmount += lineTotal
			totalCost += product.CostPrice * line.Quantity

			if remaining := product.CurrentStock - line.Quantity; remaining <= product.MinStockLevel {
				alerts = append(alerts, lowStockAlert{
					Name:          product.Name,
					CurrentStock:  remaining,
					MinStockLevel: product.MinStockLevel,
				})
			}
		}

		record := &model.SalesTransaction{
			Items:         items,
			TotalAmount:   totalAmount,
			TotalCost:     totalCost,
			Profit:        totalAmount - totalCost,
			PaymentMethod: req.PaymentMethod,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			SoldByUserID:  &sellerID,
		}
		record.CreatedBy = sellerID
		record.UpdatedBy = sellerID

		if err := s.salesRepo.Create(tx, record); err != nil {
			return err
		}

		sale = record
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastSale(sale, sellerName, alerts)
	return sale, nil
}

func (s *salesService) broadcastSale(sale *model.SalesTransaction, sellerName string, alerts []lowStockAlert) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_recorded",
			"sale": map[string]interface{}{
				"id":               sale.ID,
				"transaction_code": sale.TransactionCode,
				"total_amount":     sale.TotalAmount,
				"profit":           sale.Profit,
				"item_count":       len(sale.Items),
			},
			"message": fmt.Sprintf("%s recorded sale %s", sellerName, sale.TransactionCode),
		}
		if len(alerts) > 0 {
			payload["low_stock_alerts"] = alerts
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func (s *salesService) ListSales(params query.Params, filters repository.SaleFilters) ([]model.SalesTransaction, int64, int, error) {
	params = params.Normalized(20)
	sales, total, err := s.salesRepo.Search(params, filters)
	if err != nil {
		return nil, 0, 0, err
	}
	return sales, total, query.TotalPages(total, params.Limit), nil
}

func (s *salesService) GetSaleByID(id uuid.UUID) (*model.SalesTransaction, error) {
	return s.salesRepo.FindByID(id)
}
