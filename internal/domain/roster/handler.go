package roster

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
	api.GET("/ipd/shifts", h.ListIPDShifts)
	api.POST("/ipd/shifts", h.SaveIPDShifts)
	api.GET("/ipd/summary", h.ListSummaries)
	api.POST("/ipd/summary", h.SaveSummary)
	api.POST("/ipd/save-all", h.SaveAll)
	api.GET("/opd/shifts", h.ListOPDShifts)
	api.POST("/opd/shifts", h.SaveOPDShifts)
}

// optionalWardID parses the ward_id query parameter, returning uuid.Nil when
// it is absent.
func optionalWardID(c echo.Context) (uuid.UUID, error) {
	raw := c.QueryParam("ward_id")
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func (h *Handler) ListIPDShifts(c echo.Context) error {
	wardID, err := optionalWardID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
	}
	items, err := h.svc.ListIPDShifts(c.Request().Context(), c.QueryParam("date"), wardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if items == nil {
		items = []*IPDShift{}
	}
	return c.JSON(http.StatusOK, items)
}

type saveIPDShiftsRequest struct {
	Shifts []*IPDShift `json:"shifts"`
}

func (h *Handler) SaveIPDShifts(c echo.Context) error {
	var req saveIPDShiftsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveIPDShifts(c.Request().Context(), req.Shifts); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, req.Shifts)
}

func (h *Handler) ListSummaries(c echo.Context) error {
	wardID, err := optionalWardID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
	}
	items, err := h.svc.ListSummaries(c.Request().Context(), c.QueryParam("date"), wardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if items == nil {
		items = []*DailySummary{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SaveSummary(c echo.Context) error {
	var sum DailySummary
	if err := c.Bind(&sum); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveSummary(c.Request().Context(), &sum); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

type saveAllRequest struct {
	Shifts  []*IPDShift   `json:"shifts"`
	Summary *DailySummary `json:"summary"`
}

func (h *Handler) SaveAll(c echo.Context) error {
	var req saveAllRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveAll(c.Request().Context(), req.Shifts, req.Summary); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"shifts":  req.Shifts,
		"summary": req.Summary,
	})
}

func (h *Handler) ListOPDShifts(c echo.Context) error {
	wardID, err := optionalWardID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
	}
	items, err := h.svc.ListOPDShifts(c.Request().Context(), c.QueryParam("date"), wardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if items == nil {
		items = []*OPDShift{}
	}
	return c.JSON(http.StatusOK, items)
}

type saveOPDShiftsRequest struct {
	Shifts []*OPDShift `json:"shifts"`
}

func (h *Handler) SaveOPDShifts(c echo.Context) error {
	var req saveOPDShiftsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveOPDShifts(c.Request().Context(), req.Shifts); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, req.Shifts)
}
