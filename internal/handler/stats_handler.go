package handler

import (
	"net/http"

	"inventario/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /stats のAPI（ダッシュボードのカード用）
type StatsHandler struct {
	uc *usecase.StatsUsecase
}

// DI
func NewStatsHandler(uc *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats", h.snapshot)
}

func (h *StatsHandler) snapshot(c echo.Context) error {
	stats, err := h.uc.Snapshot(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
