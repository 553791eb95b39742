package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type CakeUsecase struct {
	cakeRepo repo.CakeRepository
}

// DI
func NewCakeUsecase(cakeRepo repo.CakeRepository) *CakeUsecase {
	return &CakeUsecase{cakeRepo: cakeRepo}
}

func (u *CakeUsecase) ListCakes(ctx context.Context) ([]model.Cake, error) {
	cakes, err := u.cakeRepo.List(ctx)
	if err != nil {
		return []model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cakes, nil
}

func (u *CakeUsecase) ListAvailableCakes(ctx context.Context) ([]model.Cake, error) {
	cakes, err := u.cakeRepo.ListAvailable(ctx)
	if err != nil {
		return []model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cakes, nil
}

func (u *CakeUsecase) ListCakesByCategory(ctx context.Context, category string) ([]model.Cake, error) {
	if category == "" {
		return []model.Cake{}, NewHTTPError(http.StatusBadRequest, "category required")
	}

	cakes, err := u.cakeRepo.ListByCategory(ctx, category)
	if err != nil {
		return []model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cakes, nil
}

func (u *CakeUsecase) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := u.cakeRepo.ListCategories(ctx)
	if err != nil {
		return []string{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CakeUsecase) GetCake(ctx context.Context, cakeID int64) (model.Cake, error) {
	if cakeID <= 0 {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "invalid cake id")
	}

	c, err := u.cakeRepo.FindByID(ctx, cakeID)
	if err == repo.ErrNotFound {
		return model.Cake{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

type CreateCakeInput struct {
	Name        string
	Description string
	ImageURL    *string
	Price       decimal.Decimal
	Category    string
	IsAvailable *bool // 未指定ならtrue
}

func (u *CakeUsecase) CreateCake(ctx context.Context, in CreateCakeInput) (model.Cake, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "category required")
	}
	if !in.Price.IsPositive() {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	now := time.Now()
	c, err := u.cakeRepo.Create(ctx, model.Cake{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 部分更新の入力。nilのフィールドは変更しない。
// image_urlだけは「未指定」と「明示的なnull（画像を消す）」を区別する。
type UpdateCakeInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	ImageURLSet bool
	Price       *decimal.Decimal
	Category    *string
	IsAvailable *bool
}

func (u *CakeUsecase) UpdateCake(ctx context.Context, cakeID int64, in UpdateCakeInput) (model.Cake, error) {
	if cakeID <= 0 {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "invalid cake id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "category required")
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return model.Cake{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}

	fields := map[string]interface{}{
		// 部分更新でもupdated_atは必ず進める
		"updated_at": time.Now(),
	}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ImageURLSet {
		fields["image_url"] = in.ImageURL
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		fields["category"] = strings.TrimSpace(*in.Category)
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}

	err := u.cakeRepo.UpdateFields(ctx, cakeID, fields)
	if err == repo.ErrNotFound {
		return model.Cake{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.cakeRepo.FindByID(ctx, cakeID)
	if err != nil {
		return model.Cake{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 削除は冪等。存在しないIDでも成功として扱う（updateの404とは非対称）
func (u *CakeUsecase) DeleteCake(ctx context.Context, cakeID int64) error {
	if cakeID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid cake id")
	}

	if err := u.cakeRepo.Delete(ctx, cakeID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
