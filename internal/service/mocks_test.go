package service_test

import (
	"time"

	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *model.StoreProduct) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *model.StoreProduct) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(id uuid.UUID) (*model.StoreProduct, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) FindActiveByID(tx *gorm.DB, id uuid.UUID) (*model.StoreProduct, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(barcode string) (*model.StoreProduct, error) {
	args := m.Called(barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) Search(params query.Params, filters repository.ProductFilters) ([]model.StoreProduct, int64, error) {
	args := m.Called(params, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.StoreProduct), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindAllActive() ([]model.StoreProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) FindLowStock() ([]model.StoreProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) FindOutOfStock() ([]model.StoreProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoreProduct), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity float64) (bool, error) {
	args := m.Called(tx, id, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(id uuid.UUID, delta float64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) ExpectedProfit() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

// --- Mock SalesRepository ---

type MockSalesRepository struct {
	mock.Mock
}

// InTransaction just runs the callback; the unit under test supplies
// all transactional behavior through the other mocked methods.
func (m *MockSalesRepository) InTransaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockSalesRepository) Create(tx *gorm.DB, sale *model.SalesTransaction) error {
	args := m.Called(tx, sale)
	return args.Error(0)
}

func (m *MockSalesRepository) FindByID(id uuid.UUID) (*model.SalesTransaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesTransaction), args.Error(1)
}

func (m *MockSalesRepository) Search(params query.Params, filters repository.SaleFilters) ([]model.SalesTransaction, int64, error) {
	args := m.Called(params, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.SalesTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesRepository) StockMovement(productID uuid.UUID, startDate time.Time) ([]repository.StockMovementData, error) {
	args := m.Called(productID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StockMovementData), args.Error(1)
}

func (m *MockSalesRepository) BestSellers(limit int, since *time.Time) ([]repository.BestSellerData, error) {
	args := m.Called(limit, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BestSellerData), args.Error(1)
}

func (m *MockSalesRepository) Totals(since time.Time) (*repository.SalesTotals, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SalesTotals), args.Error(1)
}

func (m *MockSalesRepository) ProfitLoss(startDate, endDate time.Time) (*repository.ProfitLossData, error) {
	args := m.Called(startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ProfitLossData), args.Error(1)
}

// --- Mock FileService ---

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Attach(modelName string, documentID uuid.UUID, uploads []service.Upload, userID string) ([]model.File, error) {
	args := m.Called(modelName, documentID, uploads, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) FilesByDocument(modelName string, documentID uuid.UUID) ([]model.File, error) {
	args := m.Called(modelName, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) DeleteByDocument(modelName string, documentID uuid.UUID) error {
	args := m.Called(modelName, documentID)
	return args.Error(0)
}
