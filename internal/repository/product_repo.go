package repository

import (
	"errors"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilters narrows catalog listings beyond free-text search.
type ProductFilters struct {
	Category        string
	MeasurementType string
	LowStock        bool
}

type ProductRepository interface {
	Create(product *model.StoreProduct) error
	Update(product *model.StoreProduct) error
	FindByID(id uuid.UUID) (*model.StoreProduct, error)
	FindActiveByID(tx *gorm.DB, id uuid.UUID) (*model.StoreProduct, error)
	FindByBarcode(barcode string) (*model.StoreProduct, error)
	Search(params query.Params, filters ProductFilters) ([]model.StoreProduct, int64, error)
	FindAllActive() ([]model.StoreProduct, error)
	FindLowStock() ([]model.StoreProduct, error)
	FindOutOfStock() ([]model.StoreProduct, error)
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity float64) (bool, error)
	AdjustStock(id uuid.UUID, delta float64) error
	ExpectedProfit() (float64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.StoreProduct) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.StoreProduct) error {
	return r.db.Save(product).Error
}

// FindByID looks up a product in any state. Retired products stay
// reachable here for restock and historical lookups.
func (r *productRepo) FindByID(id uuid.UUID) (*model.StoreProduct, error) {
	var product model.StoreProduct
	err := r.db.Preload("CreatedByUser").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	return &product, err
}

// FindActiveByID loads an active product inside tx with a row lock so
// concurrent sales of the same product serialize.
func (r *productRepo) FindActiveByID(tx *gorm.DB, id uuid.UUID) (*model.StoreProduct, error) {
	var product model.StoreProduct
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&product, "id = ? AND is_active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.StoreProduct, error) {
	var product model.StoreProduct
	err := r.db.First(&product, "barcode = ? AND is_active = ?", barcode, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	return &product, err
}

var productSearchFields = []string{"name", "description", "category", "supplier", "barcode"}

func (r *productRepo) Search(params query.Params, filters ProductFilters) ([]model.StoreProduct, int64, error) {
	base := r.db.Model(&model.StoreProduct{}).Where("is_active = ?", true)

	if params.Search != "" {
		base = base.Scopes(query.SearchScope(params.Search, productSearchFields))
	}
	if filters.Category != "" {
		base = base.Where("category = ?", filters.Category)
	}
	if filters.MeasurementType != "" {
		base = base.Where("measurement_type = ?", filters.MeasurementType)
	}
	if filters.LowStock {
		base = base.Where("current_stock <= min_stock_level")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.StoreProduct
	err := base.
		Scopes(query.SortScope(params.Sort), query.PaginateScope(params.Page, params.Limit)).
		Preload("CreatedByUser").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindAllActive() ([]model.StoreProduct, error) {
	var products []model.StoreProduct
	err := r.db.Where("is_active = ?", true).Find(&products).Error
	return products, err
}

// FindLowStock returns active products at or below their reorder
// threshold (inclusive comparison).
func (r *productRepo) FindLowStock() ([]model.StoreProduct, error) {
	var products []model.StoreProduct
	err := r.db.
		Where("is_active = ? AND current_stock <= min_stock_level", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindOutOfStock() ([]model.StoreProduct, error) {
	var products []model.StoreProduct
	err := r.db.
		Where("is_active = ? AND current_stock = 0", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock applies an atomic conditional decrement guarded by
// current_stock >= quantity. Returns false when the guard rejected the
// update, i.e. the stock changed underneath the caller.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity float64) (bool, error) {
	res := tx.Model(&model.StoreProduct{}).
		Where("id = ? AND is_active = ? AND current_stock >= ?", id, true, quantity).
		Update("current_stock", gorm.Expr("current_stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AdjustStock shifts stock by delta on an active product. Missing or
// retired products, and subtractions that would drive stock negative,
// are skipped without error.
func (r *productRepo) AdjustStock(id uuid.UUID, delta float64) error {
	q := r.db.Model(&model.StoreProduct{}).
		Where("id = ? AND is_active = ?", id, true)
	if delta < 0 {
		q = q.Where("current_stock >= ?", -delta)
	}
	return q.Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error
}

// ExpectedProfit sums (price_per_unit - cost_price) * current_stock
// over active products: potential profit if everything on hand sold.
func (r *productRepo) ExpectedProfit() (float64, error) {
	var expected float64
	err := r.db.Model(&model.StoreProduct{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM((price_per_unit - cost_price) * current_stock), 0)").
		Scan(&expected).Error
	return expected, err
}
