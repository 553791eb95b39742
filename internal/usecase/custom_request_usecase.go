package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type CustomRequestUsecase struct {
	requests repo.CustomRequestRepository
}

// DI
func NewCustomRequestUsecase(requests repo.CustomRequestRepository) *CustomRequestUsecase {
	return &CustomRequestUsecase{requests: requests}
}

type CreateCustomRequestInput struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	CakeDescription   string
	Occasion          *string
	Size              *string
	FlavorPreferences *string
	DesignPreferences *string
	BudgetRange       *string
	RequiredDate      *time.Time
}

func (u *CustomRequestUsecase) CreateRequest(ctx context.Context, in CreateCustomRequestInput) (model.CustomCakeRequest, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "customer_name required")
	}
	if !emailRe.MatchString(in.CustomerEmail) {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "invalid customer_email")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "customer_phone required")
	}
	//バイト数ではなく文字数で数える（マルチバイトの説明でも正しく判定する）
	if utf8.RuneCountInString(strings.TrimSpace(in.CakeDescription)) < 10 {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "cake_description must be at least 10 characters")
	}

	//statusはpending、見積もり額と管理者メモは管理者が入れるまでnull
	now := time.Now()
	req, err := u.requests.Create(ctx, model.CustomCakeRequest{
		CustomerName:      strings.TrimSpace(in.CustomerName),
		CustomerEmail:     in.CustomerEmail,
		CustomerPhone:     in.CustomerPhone,
		CakeDescription:   in.CakeDescription,
		Occasion:          in.Occasion,
		Size:              in.Size,
		FlavorPreferences: in.FlavorPreferences,
		DesignPreferences: in.DesignPreferences,
		BudgetRange:       in.BudgetRange,
		RequiredDate:      in.RequiredDate,
		Status:            model.RequestStatusPending,
		AdminNotes:        nil,
		QuotedPrice:       nil,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return req, nil
}

// 新しい順
func (u *CustomRequestUsecase) ListRequests(ctx context.Context) ([]model.CustomCakeRequest, error) {
	reqs, err := u.requests.List(ctx)
	if err != nil {
		return []model.CustomCakeRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reqs, nil
}

func (u *CustomRequestUsecase) GetRequest(ctx context.Context, requestID int64) (model.CustomCakeRequest, error) {
	if requestID <= 0 {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	req, err := u.requests.FindByID(ctx, requestID)
	if err == repo.ErrNotFound {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return req, nil
}

// 管理者による更新。statusは必須、メモと見積もり額は任意。
// quoted_priceは明示的なnullでクリアできる（未指定なら触らない）。
type UpdateCustomRequestInput struct {
	Status         string
	AdminNotes     *string
	AdminNotesSet  bool
	QuotedPrice    *decimal.Decimal
	QuotedPriceSet bool
}

func (u *CustomRequestUsecase) UpdateRequest(ctx context.Context, requestID int64, in UpdateCustomRequestInput) (model.CustomCakeRequest, error) {
	if requestID <= 0 {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	switch model.RequestStatus(newStatus) {
	case model.RequestStatusPending, model.RequestStatusReviewed, model.RequestStatusQuoted,
		model.RequestStatusApproved, model.RequestStatusInProgress, model.RequestStatusCompleted,
		model.RequestStatusCancelled:
		// OK
	default:
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.QuotedPrice != nil && !in.QuotedPrice.IsPositive() {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusBadRequest, "quoted_price must be > 0")
	}

	fields := map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	if in.AdminNotesSet {
		fields["admin_notes"] = in.AdminNotes
	}
	if in.QuotedPriceSet {
		fields["quoted_price"] = in.QuotedPrice
	}

	err := u.requests.UpdateFields(ctx, requestID, fields)
	if err == repo.ErrNotFound {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	req, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		return model.CustomCakeRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return req, nil
}
