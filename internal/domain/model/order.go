package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail   string          `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone   string          `gorm:"type:varchar(50);not null" json:"customer_phone"`
	DeliveryAddress string          `gorm:"type:text;not null" json:"delivery_address"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	// 明細は注文と同時に作られ、注文削除時は一緒に消える
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
