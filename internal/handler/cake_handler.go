package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /cakes の公開API（店頭側）
type CakeHandler struct {
	uc *usecase.CakeUsecase
}

// DI
func NewCakeHandler(uc *usecase.CakeUsecase) *CakeHandler {
	return &CakeHandler{uc: uc}
}

// 公開ケーキのルートを登録
func (h *CakeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cakes", h.list)
	e.GET("/cakes/available", h.listAvailable)
	e.GET("/cakes/categories", h.listCategories)
	e.GET("/cakes/category/:category", h.listByCategory)
	e.GET("/cakes/:id", h.detail)
}

func (h *CakeHandler) list(c echo.Context) error {
	cakes, err := h.uc.ListCakes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cakes)
}

func (h *CakeHandler) listAvailable(c echo.Context) error {
	cakes, err := h.uc.ListAvailableCakes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cakes)
}

func (h *CakeHandler) listCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CakeHandler) listByCategory(c echo.Context) error {
	cakes, err := h.uc.ListCakesByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cakes)
}

func (h *CakeHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	cake, err := h.uc.GetCake(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cake)
}
