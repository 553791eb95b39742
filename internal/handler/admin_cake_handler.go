package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// SuccessResponse は Success { message: string } の形に寄せます。
type SuccessResponse struct {
	Message string `json:"message"`
}

type CakeCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    *string         `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsAvailable *bool           `json:"is_available"`
}

// 部分更新。image_urlはRawMessageで受けて「未指定」と「null（画像を消す）」を区別する
type CakeUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ImageURL    json.RawMessage  `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	IsAvailable *bool            `json:"is_available"`
}

// /admin/cakes をまとめる
type AdminCakeHandler struct {
	uc *usecase.CakeUsecase
}

// DI
func NewAdminCakeHandler(uc *usecase.CakeUsecase) *AdminCakeHandler {
	return &AdminCakeHandler{uc: uc}
}

// adminを登録
func (h *AdminCakeHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/admin")

	admin.POST("/cakes", h.createCake)
	admin.PATCH("/cakes/:id", h.updateCake)
	admin.DELETE("/cakes/:id", h.deleteCake)
}

func (h *AdminCakeHandler) createCake(c echo.Context) error {
	var req CakeCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cake, err := h.uc.CreateCake(c.Request().Context(), usecase.CreateCakeInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cake)
}

func (h *AdminCakeHandler) updateCake(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CakeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateCakeInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	}

	//image_url: キーが無い→触らない / null→NULLにする / 文字列→差し替え
	if len(req.ImageURL) > 0 {
		in.ImageURLSet = true
		if string(req.ImageURL) != "null" {
			var url string
			if err := json.Unmarshal(req.ImageURL, &url); err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image_url"})
			}
			in.ImageURL = &url
		}
	}

	cake, err := h.uc.UpdateCake(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cake)
}

func (h *AdminCakeHandler) deleteCake(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteCake(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
