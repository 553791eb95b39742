package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

// 明細＋ケーキ名。名前は保存していないので読むときにjoinする
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemWithCake, error) {
	var items []repo.OrderItemWithCake
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, cakes.name AS cake_name").
		Joins("LEFT JOIN cakes ON cakes.id = order_items.cake_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&items).Error
	if err != nil {
		return []repo.OrderItemWithCake{}, err
	}
	return items, nil
}
