package service_test

import (
	"errors"
	"testing"

	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSalesFixture() (*MockProductRepository, *MockSalesRepository, service.SalesService) {
	pRepo := new(MockProductRepository)
	sRepo := new(MockSalesRepository)
	svc := service.NewSalesService(pRepo, sRepo, nil)
	return pRepo, sRepo, svc
}

func testProduct(stock float64) *model.StoreProduct {
	p := &model.StoreProduct{
		Name:            "Chicken (Whole)",
		Category:        model.CategoryProtein,
		MeasurementType: model.MeasureScale,
		PricePerUnit:    100,
		CostPrice:       70,
		CurrentStock:    stock,
		MinStockLevel:   5,
		IsActive:        true,
	}
	p.ID = uuid.New()
	return p
}

func TestRecordSale_ComputesTotalsAndSnapshots(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	product := testProduct(10)
	pRepo.On("FindActiveByID", mock.Anything, product.ID).Return(product, nil).Once()
	pRepo.On("DecrementStock", mock.Anything, product.ID, 3.0).Return(true, nil).Once()
	sRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.SalesTransaction")).Return(nil).Once()

	req := &model.RecordSaleRequest{
		Items:         []model.SaleLineRequest{{ProductID: product.ID, Quantity: 3}},
		PaymentMethod: model.PayCash,
	}

	sale, err := svc.RecordSale(req, "seller-1", "Ada")
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, 300.0, sale.TotalAmount)
	assert.Equal(t, 210.0, sale.TotalCost)
	assert.Equal(t, 90.0, sale.Profit)
	assert.Equal(t, model.PayCash, sale.PaymentMethod)

	require.Len(t, sale.Items, 1)
	item := sale.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 3.0, item.Quantity)
	assert.Equal(t, 100.0, item.UnitPrice)
	assert.Equal(t, 300.0, item.TotalPrice)
	assert.Equal(t, model.MeasureScale, item.MeasurementType)

	require.NotNil(t, sale.SoldByUserID)
	assert.Equal(t, "seller-1", *sale.SoldByUserID)
	assert.Equal(t, "seller-1", sale.CreatedBy)

	pRepo.AssertExpectations(t)
	sRepo.AssertExpectations(t)
}

func TestRecordSale_MultiLineAccumulatesTotals(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	chicken := testProduct(10)
	rice := &model.StoreProduct{
		Name:            "Rice (Local)",
		Category:        model.CategoryGrain,
		MeasurementType: model.MeasureContainer,
		ContainerSize:   model.ContainerLarge,
		PricePerUnit:    1800,
		CostPrice:       1500,
		CurrentStock:    120,
		MinStockLevel:   30,
		IsActive:        true,
	}
	rice.ID = uuid.New()

	pRepo.On("FindActiveByID", mock.Anything, chicken.ID).Return(chicken, nil).Once()
	pRepo.On("DecrementStock", mock.Anything, chicken.ID, 2.0).Return(true, nil).Once()
	pRepo.On("FindActiveByID", mock.Anything, rice.ID).Return(rice, nil).Once()
	pRepo.On("DecrementStock", mock.Anything, rice.ID, 1.0).Return(true, nil).Once()
	sRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.SalesTransaction")).Return(nil).Once()

	req := &model.RecordSaleRequest{
		Items: []model.SaleLineRequest{
			{ProductID: chicken.ID, Quantity: 2},
			{ProductID: rice.ID, Quantity: 1},
		},
		PaymentMethod: model.PayTransfer,
	}

	sale, err := svc.RecordSale(req, "seller-1", "Ada")
	require.NoError(t, err)

	assert.Equal(t, 2000.0, sale.TotalAmount) // 2*100 + 1*1800
	assert.Equal(t, 1640.0, sale.TotalCost)   // 2*70 + 1*1500
	assert.Equal(t, 360.0, sale.Profit)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, model.ContainerLarge, sale.Items[1].ContainerSize)

	pRepo.AssertExpectations(t)
	sRepo.AssertExpectations(t)
}

func TestRecordSale_InsufficientStockRejectsWholeSale(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	product := testProduct(2)
	pRepo.On("FindActiveByID", mock.Anything, product.ID).Return(product, nil).Once()

	req := &model.RecordSaleRequest{
		Items:         []model.SaleLineRequest{{ProductID: product.ID, Quantity: 5}},
		PaymentMethod: model.PayCash,
	}

	sale, err := svc.RecordSale(req, "seller-1", "Ada")
	require.Error(t, err)
	assert.Nil(t, sale)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))

	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Chicken (Whole)", stockErr.ProductName)
	assert.Equal(t, 2.0, stockErr.Available)
	assert.Equal(t, 5.0, stockErr.Requested)
	assert.Contains(t, err.Error(), "Available: 2")

	pRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	sRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordSale_LaterLineFailureAbortsEverything(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	first := testProduct(10)
	second := testProduct(1)
	second.Name = "Goat Meat"

	pRepo.On("FindActiveByID", mock.Anything, first.ID).Return(first, nil).Once()
	pRepo.On("DecrementStock", mock.Anything, first.ID, 4.0).Return(true, nil).Once()
	pRepo.On("FindActiveByID", mock.Anything, second.ID).Return(second, nil).Once()

	req := &model.RecordSaleRequest{
		Items: []model.SaleLineRequest{
			{ProductID: first.ID, Quantity: 4},
			{ProductID: second.ID, Quantity: 3},
		},
		PaymentMethod: model.PayCash,
	}

	_, err := svc.RecordSale(req, "seller-1", "Ada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))

	// The failed line means no transaction row is ever written; the
	// first line's decrement rolls back with the transaction.
	sRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pRepo.AssertExpectations(t)
}

func TestRecordSale_RepeatedProductSeesEarlierDecrement(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	fresh := testProduct(10)
	depleted := testProduct(7)
	depleted.ID = fresh.ID
	depleted.Name = fresh.Name

	// Same product on two lines: the second read happens inside the
	// same transaction and sees 7, not the original 10.
	pRepo.On("FindActiveByID", mock.Anything, fresh.ID).Return(fresh, nil).Once()
	pRepo.On("DecrementStock", mock.Anything, fresh.ID, 3.0).Return(true, nil).Once()
	pRepo.On("FindActiveByID", mock.Anything, fresh.ID).Return(depleted, nil).Once()

	req := &model.RecordSaleRequest{
		Items: []model.SaleLineRequest{
			{ProductID: fresh.ID, Quantity: 3},
			{ProductID: fresh.ID, Quantity: 8},
		},
		PaymentMethod: model.PayCash,
	}

	_, err := svc.RecordSale(req, "seller-1", "Ada")
	require.Error(t, err)

	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 7.0, stockErr.Available)
	assert.Equal(t, 8.0, stockErr.Requested)

	sRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pRepo.AssertExpectations(t)
}

func TestRecordSale_GuardedDecrementFailureIsInsufficientStock(t *testing.T) {
	pRepo, sRepo, svc := newSalesFixture()

	product := testProduct(10)
	pRepo.On("FindActiveByID", mock.Anything, product.ID).Return(product, nil).Once()
	// The read said 10, but a concurrent sale drained the row before
	// our UPDATE: the conditional decrement matches nothing.
	pRepo.On("DecrementStock", mock.Anything, product.ID, 3.0).Return(false, nil).Once()

	req := &model.RecordSaleRequest{
		Items:         []model.SaleLineRequest{{ProductID: product.ID, Quantity: 3}},
		PaymentMethod: model.PayCash,
	}

	_, err := svc.RecordSale(req, "seller-1", "Ada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientStock))
	sRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	pRepo, _, svc := newSalesFixture()

	missing := uuid.New()
	pRepo.On("FindActiveByID", mock.Anything, missing).Return(nil, apperrors.ErrNotFound).Once()

	req := &model.RecordSaleRequest{
		Items:         []model.SaleLineRequest{{ProductID: missing, Quantity: 1}},
		PaymentMethod: model.PayCash,
	}

	_, err := svc.RecordSale(req, "seller-1", "Ada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), missing.String())
}

func TestRecordSale_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *model.RecordSaleRequest
	}{
		{
			name: "empty items",
			req: &model.RecordSaleRequest{
				Items:         []model.SaleLineRequest{},
				PaymentMethod: model.PayCash,
			},
		},
		{
			name: "unknown payment method",
			req: &model.RecordSaleRequest{
				Items:         []model.SaleLineRequest{{ProductID: uuid.New(), Quantity: 1}},
				PaymentMethod: "barter",
			},
		},
		{
			name: "zero quantity line",
			req: &model.RecordSaleRequest{
				Items:         []model.SaleLineRequest{{ProductID: uuid.New(), Quantity: 0}},
				PaymentMethod: model.PayCash,
			},
		},
		{
			name: "nil product id",
			req: &model.RecordSaleRequest{
				Items:         []model.SaleLineRequest{{ProductID: uuid.Nil, Quantity: 1}},
				PaymentMethod: model.PayCash,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pRepo, sRepo, svc := newSalesFixture()

			sale, err := svc.RecordSale(tt.req, "seller-1", "Ada")
			require.Error(t, err)
			assert.Nil(t, sale)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))

			pRepo.AssertNotCalled(t, "FindActiveByID", mock.Anything, mock.Anything)
			sRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestListSales_NormalizesPagination(t *testing.T) {
	_, sRepo, svc := newSalesFixture()

	expected := query.Params{Page: 1, Limit: 20}
	sRepo.On("Search", expected, repository.SaleFilters{}).
		Return([]model.SalesTransaction{{}, {}}, int64(45), nil).Once()

	sales, total, pages, err := svc.ListSales(query.Params{}, repository.SaleFilters{})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, int64(45), total)
	assert.Equal(t, 3, pages)

	sRepo.AssertExpectations(t)
}

func TestGetSaleByID_NotFound(t *testing.T) {
	_, sRepo, svc := newSalesFixture()

	id := uuid.New()
	sRepo.On("FindByID", id).Return(nil, apperrors.ErrNotFound).Once()

	sale, err := svc.GetSaleByID(id)
	assert.Nil(t, sale)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
