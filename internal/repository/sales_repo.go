package repository

import (
	"errors"
	"time"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementData is one calendar-day bucket of sales for a product.
// Days with no sales are absent, not zero-filled.
type StockMovementData struct {
	Date             string  `json:"date"`
	QuantitySold     float64 `json:"quantity_sold"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
}

// BestSellerData aggregates sale lines per product. Name, category and
// cost basis come from the product's current row, not the snapshot.
type BestSellerData struct {
	ProductID    uuid.UUID             `json:"product_id"`
	Name         string                `json:"name"`
	Category     model.ProductCategory `json:"category"`
	QuantitySold float64               `json:"quantity_sold"`
	Revenue      float64               `json:"revenue"`
	Cost         float64               `json:"cost"`
	Profit       float64               `json:"profit"`
}

// SalesTotals summarizes the transaction log over a trailing window.
type SalesTotals struct {
	TotalSales       float64 `json:"total_sales"`
	TotalCost        float64 `json:"total_cost"`
	TotalProfit      float64 `json:"total_profit"`
	TransactionCount int64   `json:"transaction_count"`
}

// ProfitLossData is the realized result over a closed date range.
type ProfitLossData struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCostOfGoods  float64 `json:"total_cost_of_goods"`
	GrossProfit       float64 `json:"gross_profit"`
	TotalTransactions int64   `json:"total_transactions"`
}

// SaleFilters narrows transaction listings beyond free-text search.
type SaleFilters struct {
	StartDate      *time.Time
	EndDate        *time.Time
	PaymentMethods []string
	CustomerName   string
}

type SalesRepository interface {
	InTransaction(fn func(tx *gorm.DB) error) error
	Create(tx *gorm.DB, sale *model.SalesTransaction) error
	FindByID(id uuid.UUID) (*model.SalesTransaction, error)
	Search(params query.Params, filters SaleFilters) ([]model.SalesTransaction, int64, error)
	StockMovement(productID uuid.UUID, startDate time.Time) ([]StockMovementData, error)
	BestSellers(limit int, since *time.Time) ([]BestSellerData, error)
	Totals(since time.Time) (*SalesTotals, error)
	ProfitLoss(startDate, endDate time.Time) (*ProfitLossData, error)
}

type salesRepo struct {
	db *gorm.DB
}

func NewSalesRepo(db *gorm.DB) SalesRepository {
	return &salesRepo{db}
}

// InTransaction runs fn inside one database transaction so the whole
// reconciliation commits or rolls back as a unit.
func (r *salesRepo) InTransaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *salesRepo) Create(tx *gorm.DB, sale *model.SalesTransaction) error {
	return tx.Create(sale).Error
}

func (r *salesRepo) FindByID(id uuid.UUID) (*model.SalesTransaction, error) {
	var sale model.SalesTransaction
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("SoldByUser").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	return &sale, err
}

var saleSearchFields = []string{"transaction_code", "customer_name", "customer_phone"}

func (r *salesRepo) Search(params query.Params, filters SaleFilters) ([]model.SalesTransaction, int64, error) {
	base := r.db.Model(&model.SalesTransaction{})

	if params.Search != "" {
		base = base.Scopes(query.SearchScope(params.Search, saleSearchFields))
	}
	if filters.StartDate != nil {
		base = base.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		base = base.Where("created_at <= ?", *filters.EndDate)
	}
	if len(filters.PaymentMethods) > 0 {
		base = base.Where("payment_method IN ?", filters.PaymentMethods)
	}
	if filters.CustomerName != "" {
		base = base.Where("customer_name ILIKE ?", "%"+filters.CustomerName+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.SalesTransaction
	err := base.
		Scopes(query.SortScope(params.Sort), query.PaginateScope(params.Page, params.Limit)).
		Preload("Items").
		Preload("Items.Product").
		Preload("SoldByUser").
		Find(&sales).Error
	return sales, total, err
}

// StockMovement groups a product's sale lines by calendar day.
func (r *salesRepo) StockMovement(productID uuid.UUID, startDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.SalesItem{}).
		Select(`
			TO_CHAR(DATE(sales_transactions.created_at), 'YYYY-MM-DD') as date,
			COALESCE(SUM(sales_items.quantity), 0) as quantity_sold,
			COALESCE(SUM(sales_items.total_price), 0) as revenue,
			COUNT(*) as transaction_count
		`).
		Joins("JOIN sales_transactions ON sales_transactions.id = sales_items.transaction_id").
		Where("sales_items.product_id = ? AND sales_transactions.created_at >= ?", productID, startDate).
		Group("DATE(sales_transactions.created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.QuantitySold, &data.Revenue, &data.TransactionCount); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// BestSellers joins sale lines to their current product rows, groups by
// product and ranks by quantity sold. since == nil means all time.
func (r *salesRepo) BestSellers(limit int, since *time.Time) ([]BestSellerData, error) {
	q := r.db.Model(&model.SalesItem{}).
		Select(`
			store_products.id,
			store_products.name,
			store_products.category,
			COALESCE(SUM(sales_items.quantity), 0) as quantity_sold,
			COALESCE(SUM(sales_items.total_price), 0) as revenue,
			COALESCE(SUM(sales_items.quantity * store_products.cost_price), 0) as cost,
			COALESCE(SUM(sales_items.total_price - sales_items.quantity * store_products.cost_price), 0) as profit
		`).
		Joins("JOIN sales_transactions ON sales_transactions.id = sales_items.transaction_id").
		Joins("JOIN store_products ON store_products.id = sales_items.product_id")

	if since != nil {
		q = q.Where("sales_transactions.created_at >= ?", *since)
	}

	rows, err := q.
		Group("store_products.id, store_products.name, store_products.category").
		Order("quantity_sold DESC").
		Limit(limit).
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []BestSellerData
	for rows.Next() {
		var data BestSellerData
		if err := rows.Scan(&data.ProductID, &data.Name, &data.Category,
			&data.QuantitySold, &data.Revenue, &data.Cost, &data.Profit); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *salesRepo) Totals(since time.Time) (*SalesTotals, error) {
	var totals SalesTotals
	err := r.db.Model(&model.SalesTransaction{}).
		Where("created_at >= ?", since).
		Select(`
			COALESCE(SUM(total_amount), 0) as total_sales,
			COALESCE(SUM(total_cost), 0) as total_cost,
			COALESCE(SUM(profit), 0) as total_profit,
			COUNT(*) as transaction_count
		`).
		Scan(&totals).Error
	return &totals, err
}

// ProfitLoss sums transactions with createdAt inside [start, end],
// inclusive on both bounds. Empty ranges yield all zeros.
func (r *salesRepo) ProfitLoss(startDate, endDate time.Time) (*ProfitLossData, error) {
	var report ProfitLossData
	err := r.db.Model(&model.SalesTransaction{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Select(`
			COALESCE(SUM(total_amount), 0) as total_revenue,
			COALESCE(SUM(total_cost), 0) as total_cost_of_goods,
			COALESCE(SUM(profit), 0) as gross_profit,
			COUNT(*) as total_transactions
		`).
		Scan(&report).Error
	return &report, err
}
