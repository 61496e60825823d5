package his

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/ipd/his", h.Lookup)
	api.GET("/his/wards", h.ListWards)
}

type lookupRequest struct {
	WardID uuid.UUID `json:"ward_id"`
	Date   string    `json:"date"`
}

func (h *Handler) Lookup(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.WardID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ward_id is required")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	result, err := h.svc.Lookup(c.Request().Context(), req.WardID, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListWards(c echo.Context) error {
	items, err := h.svc.ListWards(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	if items == nil {
		items = []*Ward{}
	}
	return c.JSON(http.StatusOK, items)
}
