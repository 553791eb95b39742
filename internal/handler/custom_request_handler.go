package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CustomRequestCreateRequest struct {
	CustomerName      string     `json:"customer_name"`
	CustomerEmail     string     `json:"customer_email"`
	CustomerPhone     string     `json:"customer_phone"`
	CakeDescription   string     `json:"cake_description"`
	Occasion          *string    `json:"occasion"`
	Size              *string    `json:"size"`
	FlavorPreferences *string    `json:"flavor_preferences"`
	DesignPreferences *string    `json:"design_preferences"`
	BudgetRange       *string    `json:"budget_range"`
	RequiredDate      *time.Time `json:"required_date"`
}

// /custom-requests の公開API（見積もり依頼）
type CustomRequestHandler struct {
	uc *usecase.CustomRequestUsecase
}

// DI
func NewCustomRequestHandler(uc *usecase.CustomRequestUsecase) *CustomRequestHandler {
	return &CustomRequestHandler{uc: uc}
}

func (h *CustomRequestHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/custom-requests")

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *CustomRequestHandler) create(c echo.Context) error {
	var req CustomRequestCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateRequest(c.Request().Context(), usecase.CreateCustomRequestInput{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		CakeDescription:   req.CakeDescription,
		Occasion:          req.Occasion,
		Size:              req.Size,
		FlavorPreferences: req.FlavorPreferences,
		DesignPreferences: req.DesignPreferences,
		BudgetRange:       req.BudgetRange,
		RequiredDate:      req.RequiredDate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CustomRequestHandler) list(c echo.Context) error {
	out, err := h.uc.ListRequests(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomRequestHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
