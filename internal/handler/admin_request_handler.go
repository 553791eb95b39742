package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// admin_notesとquoted_priceはRawMessageで受けて
// 「未指定（触らない）」と「null（クリア）」を区別する
type CustomRequestUpdateRequest struct {
	Status      string          `json:"status"`
	AdminNotes  json.RawMessage `json:"admin_notes"`
	QuotedPrice json.RawMessage `json:"quoted_price"`
}

type AdminRequestHandler struct {
	uc *usecase.CustomRequestUsecase
}

func NewAdminRequestHandler(uc *usecase.CustomRequestUsecase) *AdminRequestHandler {
	return &AdminRequestHandler{uc: uc}
}

func (h *AdminRequestHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/admin")

	admin.PATCH("/custom-requests/:id", h.updateRequest)
}

func (h *AdminRequestHandler) updateRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CustomRequestUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateCustomRequestInput{
		Status: req.Status,
	}

	if len(req.AdminNotes) > 0 {
		in.AdminNotesSet = true
		if string(req.AdminNotes) != "null" {
			var notes string
			if err := json.Unmarshal(req.AdminNotes, &notes); err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admin_notes"})
			}
			in.AdminNotes = &notes
		}
	}

	if len(req.QuotedPrice) > 0 {
		in.QuotedPriceSet = true
		if string(req.QuotedPrice) != "null" {
			var price decimal.Decimal
			if err := json.Unmarshal(req.QuotedPrice, &price); err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quoted_price"})
			}
			in.QuotedPrice = &price
		}
	}

	out, err := h.uc.UpdateRequest(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
