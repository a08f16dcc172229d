package model

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	Category         string    `gorm:"not null;index" json:"category"`
	SizeVolume       string    `gorm:"column:size_volume;not null" json:"size_volume"`
	UnitType         string    `gorm:"column:unit_type" json:"unit_type"`
	Price            float64   `gorm:"not null" json:"price"`
	CostPrice        *float64  `gorm:"column:cost_price" json:"cost_price"`
	StockQuantity    int       `gorm:"column:stock_quantity;not null" json:"stock_quantity"`
	ReorderLevel     int       `gorm:"column:reorder_level;default:50" json:"reorder_level"`
	WaterSource      string    `gorm:"column:water_source" json:"water_source"`
	TreatmentProcess string    `gorm:"column:treatment_process" json:"treatment_process"`
	ProductCode      string    `gorm:"column:product_code" json:"product_code"`
	ImageURL         string    `gorm:"column:image_url" json:"image_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderItem is a snapshot of a product line at checkout time; later product
// edits do not rewrite order history.
type OrderItem struct {
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	SizeVolume string  `json:"size_volume"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
}

type OrderCustomer struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	DeliveryMethod string `json:"deliveryMethod"`
}

type OrderPayment struct {
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Channel   string  `json:"channel"`
	PaidAt    string  `json:"paid_at"`
}

type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

type Order struct {
	ID       uint                              `gorm:"primaryKey" json:"id"`
	Items    datatypes.JSONSlice[OrderItem]    `json:"items"`
	Customer datatypes.JSONType[OrderCustomer] `json:"customer"`
	Payment  datatypes.JSONType[OrderPayment]  `json:"payment"`
	Totals   datatypes.JSONType[OrderTotals]   `json:"totals"`

	// Duplicated out of the Payment blob so the store can enforce
	// at-most-one order per gateway reference.
	PaymentReference string `gorm:"column:payment_reference;uniqueIndex;not null" json:"payment_reference"`

	Status              OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OrderDate           time.Time   `gorm:"column:order_date" json:"order_date"`
	DeliveryMethod      string      `gorm:"column:delivery_method" json:"delivery_method"`
	DeliveryAddress     string      `gorm:"column:delivery_address" json:"delivery_address"`
	DeliveryCity        string      `gorm:"column:delivery_city" json:"delivery_city"`
	DeliveryState       string      `gorm:"column:delivery_state" json:"delivery_state"`
	DeliveryZipCode     string      `gorm:"column:delivery_zip_code" json:"delivery_zip_code"`
	SpecialInstructions string      `gorm:"column:special_instructions" json:"special_instructions"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// DraftPayment carries the checkout-form extras the client tucks under the
// draft's payment key. The gateway's own payment record supersedes the rest.
type DraftPayment struct {
	SpecialInstructions string `json:"specialInstructions"`
}

// OrderDraft is the cart+customer+totals payload the storefront submits at
// initialize time. It rides through the gateway as opaque metadata and comes
// back on verify, where it is materialized into an Order.
type OrderDraft struct {
	Items    []OrderItem   `json:"items"`
	Customer OrderCustomer `json:"customer"`
	Totals   OrderTotals   `json:"totals"`
	Payment  DraftPayment  `json:"payment"`
}

type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Admin) TableName() string { return "admins" }
