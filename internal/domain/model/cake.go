package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売中のケーキ。is_available=falseは店頭一覧から外すだけで、
// 過去の注文からは参照され続ける（削除とは別物）。
type Cake struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	ImageURL    *string         `gorm:"type:text" json:"image_url"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
