package dashboard

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Snapshot)
}

// Snapshot serves the day dashboard. dept_type selects the inpatient view
// (IPD, the default) or an outpatient view (OPD, ER, LR).
func (h *Handler) Snapshot(c echo.Context) error {
	date := c.QueryParam("date")
	deptType := c.QueryParam("dept_type")

	wardID := uuid.Nil
	if raw := c.QueryParam("ward_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ward_id")
		}
		wardID = parsed
	}

	if deptType == "" || deptType == ward.DeptIPD {
		snap, err := h.svc.IPD(c.Request().Context(), date, wardID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, snap)
	}

	snap, err := h.svc.OPD(c.Request().Context(), date, deptType, wardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}
