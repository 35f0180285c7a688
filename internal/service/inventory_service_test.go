package service_test

import (
	"errors"
	"testing"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func TestRestock_AddsQuantityAndUpdatesCostPrice(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	product := testProduct(7)
	pRepo.On("FindByID", product.ID).Return(product, nil).Once()
	pRepo.On("Update", mock.AnythingOfType("*model.StoreProduct")).Return(nil).Once()

	updated, err := svc.Restock(product.ID, 20, float64Ptr(65), nil, "manager-1")
	require.NoError(t, err)

	assert.Equal(t, 27.0, updated.CurrentStock)
	assert.Equal(t, 65.0, updated.CostPrice)
	// Selling price untouched when no new one is given.
	assert.Equal(t, 100.0, updated.PricePerUnit)
	assert.Equal(t, "manager-1", updated.UpdatedBy)

	pRepo.AssertExpectations(t)
}

func TestRestock_KeepsRetiredProductRetired(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	product := testProduct(0)
	product.IsActive = false
	pRepo.On("FindByID", product.ID).Return(product, nil).Once()
	pRepo.On("Update", mock.AnythingOfType("*model.StoreProduct")).Return(nil).Once()

	updated, err := svc.Restock(product.ID, 5, nil, nil, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.CurrentStock)
	assert.False(t, updated.IsActive)
}

func TestRestock_RejectsNonPositiveQuantity(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	for _, qty := range []float64{0, -3} {
		_, err := svc.Restock(uuid.New(), qty, nil, nil, "manager-1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
	pRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestRestock_UnknownProduct(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	id := uuid.New()
	pRepo.On("FindByID", id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.Restock(id, 5, nil, nil, "manager-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestBulkAdjustStock_MapsOperationsToDeltas(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	addID := uuid.New()
	subID := uuid.New()
	pRepo.On("AdjustStock", addID, 5.0).Return(nil).Once()
	pRepo.On("AdjustStock", subID, -3.0).Return(nil).Once()

	err := svc.BulkAdjustStock([]model.StockAdjustment{
		{ProductID: addID, Quantity: 5, Operation: "add"},
		{ProductID: subID, Quantity: 3, Operation: "subtract"},
	})
	require.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestBulkAdjustStock_Validation(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	err := svc.BulkAdjustStock(nil)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = svc.BulkAdjustStock([]model.StockAdjustment{
		{ProductID: uuid.New(), Quantity: 0, Operation: "add"},
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = svc.BulkAdjustStock([]model.StockAdjustment{
		{ProductID: uuid.New(), Quantity: 2, Operation: "multiply"},
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	pRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestInventoryReport_TotalsValueAtCost(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	chicken := testProduct(10) // 10 * 70 = 700
	beans := testProduct(4)
	beans.Name = "Beans (Honey)"
	beans.CostPrice = 50 // 4 * 50 = 200

	low := testProduct(3)
	low.Name = "Curry Powder"
	low.MinStockLevel = 8
	out := testProduct(0)
	out.Name = "Dried Crayfish"

	pRepo.On("FindAllActive").Return([]model.StoreProduct{*chicken, *beans}, nil).Once()
	pRepo.On("FindLowStock").Return([]model.StoreProduct{*low}, nil).Once()
	pRepo.On("FindOutOfStock").Return([]model.StoreProduct{*out}, nil).Once()

	report, err := svc.Report()
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, 900.0, report.TotalValue)

	require.Len(t, report.LowStockItems, 1)
	assert.Equal(t, "Curry Powder", report.LowStockItems[0].Name)
	assert.Equal(t, 3.0, report.LowStockItems[0].CurrentStock)
	assert.Equal(t, 8.0, report.LowStockItems[0].MinStockLevel)

	require.Len(t, report.OutOfStockItems, 1)
	assert.Equal(t, "Dried Crayfish", report.OutOfStockItems[0].Name)
}

func TestExpectedProfit_Passthrough(t *testing.T) {
	pRepo := new(MockProductRepository)
	svc := service.NewInventoryService(pRepo, nil)

	pRepo.On("ExpectedProfit").Return(1234.5, nil).Once()

	profit, err := svc.ExpectedProfit()
	require.NoError(t, err)
	assert.Equal(t, 1234.5, profit)
}
