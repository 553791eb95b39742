package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CustomRequestGormRepository struct {
	db *gorm.DB
}

func NewCustomRequestGormRepository(db *gorm.DB) *CustomRequestGormRepository {
	return &CustomRequestGormRepository{db: db}
}

// 新しい順
func (r *CustomRequestGormRepository) List(ctx context.Context) ([]model.CustomCakeRequest, error) {
	var reqs []model.CustomCakeRequest
	err := r.db.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Find(&reqs).Error
	if err != nil {
		return []model.CustomCakeRequest{}, err
	}
	return reqs, nil
}

func (r *CustomRequestGormRepository) FindByID(ctx context.Context, id int64) (model.CustomCakeRequest, error) {
	var req model.CustomCakeRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CustomCakeRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CustomCakeRequest{}, err
	}
	return req, nil
}

func (r *CustomRequestGormRepository) Create(ctx context.Context, req model.CustomCakeRequest) (model.CustomCakeRequest, error) {
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return model.CustomCakeRequest{}, err
	}
	return req, nil
}

// 部分更新。quoted_priceはnilを渡すとNULLにクリアできる
func (r *CustomRequestGormRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.CustomCakeRequest{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
