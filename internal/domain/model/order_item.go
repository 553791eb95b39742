package model

import "github.com/shopspring/decimal"

// 注文の明細。unit_priceは注文時点のケーキ価格のスナップショットで、
// 後からケーキの価格が変わっても追従しない。
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	CakeID     int64           `gorm:"not null;index" json:"cake_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
}
