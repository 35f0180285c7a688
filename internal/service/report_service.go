package service

import (
	"time"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"

	"github.com/google/uuid"
)

// SalesStats pairs trailing-window sale totals with a live low-stock
// snapshot. The snapshot reflects stock now, not at period end.
type SalesStats struct {
	Period           model.PeriodType     `json:"period"`
	TotalSales       float64              `json:"total_sales"`
	TotalCost        float64              `json:"total_cost"`
	TotalProfit      float64              `json:"total_profit"`
	TransactionCount int64                `json:"transaction_count"`
	LowStockProducts []model.StoreProduct `json:"low_stock_products"`
}

type ReportService interface {
	StockMovement(productID uuid.UUID, days int) ([]repository.StockMovementData, error)
	BestSellers(limit int, period model.PeriodType) ([]repository.BestSellerData, error)
	ProfitLoss(startDate, endDate time.Time) (*repository.ProfitLossData, error)
	SalesStats(period model.PeriodType) (*SalesStats, error)
}

type reportService struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
}

func NewReportService(sRepo repository.SalesRepository, pRepo repository.ProductRepository) ReportService {
	return &reportService{salesRepo: sRepo, productRepo: pRepo}
}

// PeriodStart resolves a trailing window to its start instant. Daily
// means since local midnight; the rest step back whole calendar units.
// Unknown periods fall back to weekly.
func PeriodStart(period model.PeriodType, now time.Time) time.Time {
	switch period {
	case model.PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case model.PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case model.PeriodMonthly:
		return now.AddDate(0, -1, 0)
	case model.PeriodYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// StockMovement returns a product's per-day sales over the trailing
// window. Days without sales are omitted; callers handle the gaps.
func (s *reportService) StockMovement(productID uuid.UUID, days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = 30
	}
	startDate := time.Now().AddDate(0, 0, -days)
	return s.salesRepo.StockMovement(productID, startDate)
}

// BestSellers ranks products by quantity sold, optionally restricted to
// a trailing window. An empty period means all time.
func (s *reportService) BestSellers(limit int, period model.PeriodType) ([]repository.BestSellerData, error) {
	if limit <= 0 {
		limit = 10
	}
	var since *time.Time
	if period != "" {
		start := PeriodStart(period, time.Now())
		since = &start
	}
	return s.salesRepo.BestSellers(limit, since)
}

// ProfitLoss reports realized results over [startDate, endDate],
// inclusive on both bounds.
func (s *reportService) ProfitLoss(startDate, endDate time.Time) (*repository.ProfitLossData, error) {
	return s.salesRepo.ProfitLoss(startDate, endDate)
}

func (s *reportService) SalesStats(period model.PeriodType) (*SalesStats, error) {
	totals, err := s.salesRepo.Totals(PeriodStart(period, time.Now()))
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, err
	}

	return &SalesStats{
		Period:           period,
		TotalSales:       totals.TotalSales,
		TotalCost:        totals.TotalCost,
		TotalProfit:      totals.TotalProfit,
		TransactionCount: totals.TransactionCount,
		LowStockProducts: lowStock,
	}, nil
}
