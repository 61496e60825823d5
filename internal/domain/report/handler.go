package report

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/ipd/export", h.ExportIPD)
	api.GET("/opd/export", h.ExportOPD)
}

func (h *Handler) ExportIPD(c echo.Context) error {
	dateFrom, dateTo, wardIDs, err := exportParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ranges, err := h.svc.IPDRange(c.Request().Context(), dateFrom, dateTo, wardIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := BuildIPDWorkbook(ranges)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return writeWorkbook(c, f, fmt.Sprintf("ipd-report-%s-to-%s.xlsx", dateFrom, dateTo))
}

func (h *Handler) ExportOPD(c echo.Context) error {
	dateFrom, dateTo, wardIDs, err := exportParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ranges, err := h.svc.OPDRange(c.Request().Context(), dateFrom, dateTo, wardIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := BuildOPDWorkbook(ranges)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return writeWorkbook(c, f, fmt.Sprintf("opd-report-%s-to-%s.xlsx", dateFrom, dateTo))
}

func exportParams(c echo.Context) (dateFrom, dateTo string, wardIDs []uuid.UUID, err error) {
	dateFrom = c.QueryParam("dateFrom")
	dateTo = c.QueryParam("dateTo")
	if dateFrom == "" || dateTo == "" {
		return "", "", nil, fmt.Errorf("dateFrom and dateTo are required")
	}

	if raw := c.QueryParam("wardIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, parseErr := uuid.Parse(part)
			if parseErr != nil {
				return "", "", nil, fmt.Errorf("invalid ward id %q", part)
			}
			wardIDs = append(wardIDs, id)
		}
	}
	return dateFrom, dateTo, wardIDs, nil
}

func writeWorkbook(c echo.Context, f *excelize.File, filename string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
