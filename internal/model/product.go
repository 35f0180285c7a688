package model

import (
	"github.com/calebcharles343/divine-favour-store-backend/internal/apperrors"
)

type ProductCategory string

const (
	CategoryProtein   ProductCategory = "protein"
	CategoryVegetable ProductCategory = "vegetable"
	CategoryGrain     ProductCategory = "grain"
	CategorySpice     ProductCategory = "spice"
	CategoryOther     ProductCategory = "other"
)

// MeasurementType tells how a product is priced: by weight on the
// scale, or per discrete container.
type MeasurementType string

const (
	MeasureScale     MeasurementType = "scale"
	MeasureContainer MeasurementType = "container"
)

type ContainerSize string

const (
	ContainerSmall  ContainerSize = "small"
	ContainerMedium ContainerSize = "medium"
	ContainerLarge  ContainerSize = "large"
)

// StoreProduct is the catalog record. Retired products keep their row
// (IsActive=false) so historical sale lines can still join to them.
type StoreProduct struct {
	BaseModel
	Name            string          `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Category        ProductCategory `gorm:"type:varchar(20);not null;index" json:"category" validate:"required,oneof=protein vegetable grain spice other"`
	MeasurementType MeasurementType `gorm:"type:varchar(20);not null" json:"measurement_type" validate:"required,oneof=scale container"`
	ContainerSize   ContainerSize   `gorm:"type:varchar(10)" json:"container_size,omitempty" validate:"omitempty,oneof=small medium large"`
	PricePerUnit    float64         `gorm:"not null" json:"price_per_unit" validate:"gte=0"`
	CostPrice       float64         `gorm:"not null" json:"cost_price" validate:"gte=0"`
	CurrentStock    float64         `gorm:"not null;default:0" json:"current_stock" validate:"gte=0"`
	MinStockLevel   float64         `gorm:"not null;default:0" json:"min_stock_level" validate:"gte=0"`
	Supplier        string          `gorm:"type:varchar(255)" json:"supplier,omitempty"`
	Barcode         *string         `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// TableName specifies the table name for GORM
func (StoreProduct) TableName() string {
	return "store_products"
}

// NormalizeContainerSize enforces the measurement/container rule:
// scale products never carry a size, container products must have one.
func (p *StoreProduct) NormalizeContainerSize() error {
	switch p.MeasurementType {
	case MeasureScale:
		p.ContainerSize = ""
	case MeasureContainer:
		if p.ContainerSize == "" {
			return apperrors.ErrInvalidState
		}
	}
	return nil
}

// IsLowStock reports whether the product is at or below its reorder
// threshold. The comparison is inclusive.
func (p *StoreProduct) IsLowStock() bool {
	return p.CurrentStock <= p.MinStockLevel
}
