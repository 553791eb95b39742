package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ケーキの永続化（保存・取得）だけを約束。
type CakeRepository interface {
	List(ctx context.Context) ([]model.Cake, error)
	ListAvailable(ctx context.Context) ([]model.Cake, error)
	ListByCategory(ctx context.Context, category string) ([]model.Cake, error)
	ListCategories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id int64) (model.Cake, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Cake, error)

	Create(ctx context.Context, c model.Cake) (model.Cake, error)
	// UpdateFields は指定されたカラムだけを更新する（部分更新）
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	// Delete は存在しないIDでもエラーにしない（冪等）
	Delete(ctx context.Context, id int64) error
}
