package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayTransfer PaymentMethod = "transfer"
	PayCard     PaymentMethod = "card"
	PayPOS      PaymentMethod = "pos"
	PayCredit   PaymentMethod = "credit"
)

// PeriodType selects a trailing reporting window ending at "now".
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodYearly  PeriodType = "yearly"
)

// SalesTransaction is an immutable ledger entry. Corrections are new
// transactions, never edits.
type SalesTransaction struct {
	BaseModel
	TransactionCode string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"transaction_code"`
	Items           []SalesItem   `gorm:"foreignKey:TransactionID" json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	TotalCost       float64       `gorm:"not null" json:"total_cost"`
	Profit          float64       `gorm:"not null" json:"profit"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,oneof=cash transfer card pos credit"`
	CustomerName    string        `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone   string        `gorm:"type:varchar(30)" json:"customer_phone,omitempty"`

	SoldByUserID *string `gorm:"type:varchar(255)" json:"sold_by_user_id,omitempty"`
	SoldByUser   *User   `gorm:"foreignKey:SoldByUserID;references:ID" json:"sold_by_user,omitempty"`
}

// TableName specifies the table name for GORM
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// BeforeCreate assigns the UUID and stamps the transaction code exactly
// once. A code already present is never regenerated.
func (t *SalesTransaction) BeforeCreate(tx *gorm.DB) error {
	if err := t.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	t.EnsureTransactionCode(time.Now())
	return nil
}

// EnsureTransactionCode stamps the human-readable code on first save,
// e.g. TXN-20240115-143022-007.
func (t *SalesTransaction) EnsureTransactionCode(now time.Time) {
	if t.TransactionCode != "" {
		return
	}
	t.TransactionCode = fmt.Sprintf("TXN-%s-%03d", now.Format("20060102-150405"), rand.Intn(1000))
}

// SalesItem is one sale line. Price, cost basis and measurement are
// snapshotted from the product at sale time so later product edits do
// not rewrite history.
type SalesItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *StoreProduct   `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity      float64         `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64         `gorm:"not null" json:"unit_price"`
	TotalPrice    float64         `gorm:"not null" json:"total_price"`
	MeasurementType MeasurementType `gorm:"type:varchar(20);not null" json:"measurement_type"`
	ContainerSize   ContainerSize   `gorm:"type:varchar(10)" json:"container_size,omitempty"`
}

// TableName specifies the table name for GORM
func (SalesItem) TableName() string {
	return "sales_items"
}

func (i *SalesItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SaleLineRequest is one requested (product, quantity) pair.
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  float64   `json:"quantity" validate:"required,gt=0"`
}

// RecordSaleRequest is the reconciliation engine input.
type RecordSaleRequest struct {
	Items         []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod     `json:"payment_method" validate:"required,oneof=cash transfer card pos credit"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
}

// StockAdjustment is one entry of a bulk stock correction.
type StockAdjustment struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  float64   `json:"quantity" validate:"required,gt=0"`
	Operation string    `json:"operation" validate:"required,oneof=add subtract"`
}
