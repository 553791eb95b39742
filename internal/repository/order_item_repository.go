package repository

import (
	"context"

	"app/internal/domain/model"
)

// 読み取り時だけケーキ名を付ける（名前は保存しない）
type OrderItemWithCake struct {
	model.OrderItem
	CakeName string `json:"cake_name"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]OrderItemWithCake, error)
}
