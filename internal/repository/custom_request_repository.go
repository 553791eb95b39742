package repository

import (
	"context"

	"app/internal/domain/model"
)

type CustomRequestRepository interface {
	// List は新しい順（created_at desc）で返す
	List(ctx context.Context) ([]model.CustomCakeRequest, error)
	FindByID(ctx context.Context, id int64) (model.CustomCakeRequest, error)
	Create(ctx context.Context, r model.CustomCakeRequest) (model.CustomCakeRequest, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
}
