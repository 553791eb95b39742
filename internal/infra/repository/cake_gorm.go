package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CakeGormRepository struct {
	db *gorm.DB
}

// DI
func NewCakeGormRepository(db *gorm.DB) *CakeGormRepository {
	return &CakeGormRepository{db: db}
}

// 全ケーキを新しい順で返す（管理画面用、非公開も含む）
func (r *CakeGormRepository) List(ctx context.Context) ([]model.Cake, error) {
	var cakes []model.Cake
	err := r.db.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Find(&cakes).Error
	if err != nil {
		return []model.Cake{}, err
	}
	return cakes, nil
}

// 店頭一覧。is_available=trueのみ
func (r *CakeGormRepository) ListAvailable(ctx context.Context) ([]model.Cake, error) {
	var cakes []model.Cake
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("created_at desc").Order("id desc").
		Find(&cakes).Error
	if err != nil {
		return []model.Cake{}, err
	}
	return cakes, nil
}

// カテゴリは完全一致（大文字小文字も区別）
func (r *CakeGormRepository) ListByCategory(ctx context.Context, category string) ([]model.Cake, error) {
	var cakes []model.Cake
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at desc").Order("id desc").
		Find(&cakes).Error
	if err != nil {
		return []model.Cake{}, err
	}
	return cakes, nil
}

// カテゴリ一覧。重複なし・昇順
func (r *CakeGormRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.Cake{}).
		Distinct().
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return []string{}, err
	}
	return categories, nil
}

// IDでケーキを取得
func (r *CakeGormRepository) FindByID(ctx context.Context, id int64) (model.Cake, error) {
	var c model.Cake
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cake{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cake{}, err
	}
	return c, nil
}

// 注文作成用の一括取得。見つからないIDがあってもエラーにはしない（呼び出し側で判定）
func (r *CakeGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Cake, error) {
	if len(ids) == 0 {
		return []model.Cake{}, nil
	}
	var cakes []model.Cake
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cakes).Error
	if err != nil {
		return []model.Cake{}, err
	}
	return cakes, nil
}

// ケーキの作成
func (r *CakeGormRepository) Create(ctx context.Context, c model.Cake) (model.Cake, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Cake{}, err
	}
	return c, nil
}

// 部分更新。渡されたカラムだけ更新する
func (r *CakeGormRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Cake{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ケーキ削除（ハードデリート）。存在しなくても成功扱い
func (r *CakeGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Cake{}, id).Error
}
