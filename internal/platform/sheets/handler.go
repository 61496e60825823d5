package sheets

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wardwatch/wardwatch/internal/platform/settings"
)

// Handler serves the legacy sheet ingestion endpoint. When no URL is given
// the configured main sheet link is used.
type Handler struct {
	client *Client
	store  *settings.Store
}

func NewHandler(client *Client, store *settings.Store) *Handler {
	return &Handler{client: client, store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/sheets", h.Fetch)
}

type fetchResponse struct {
	Rows  []map[string]string `json:"rows"`
	Stats *Stats              `json:"stats"`
}

func (h *Handler) Fetch(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		cfg, err := h.store.Load()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		url = cfg.MainURL
	}
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required and no main sheet is configured")
	}

	data, err := h.client.Fetch(c.Request().Context(), url)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	rows, err := ParseCSV(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	for _, row := range rows {
		if raw, ok := row["date"]; ok && raw != "" {
			if normalized, err := NormalizeDate(raw); err == nil {
				row["date"] = normalized
			}
		}
	}

	return c.JSON(http.StatusOK, fetchResponse{Rows: rows, Stats: CalculateStats(rows)})
}
