package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	repo "inventario/internal/repository"
	"inventario/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /movements のAPI（履歴の閲覧とリアルタイム購読）
type MovementHandler struct {
	uc       *usecase.MovementUsecase
	notifier repo.MovementNotifier
}

// DI
func NewMovementHandler(uc *usecase.MovementUsecase, notifier repo.MovementNotifier) *MovementHandler {
	return &MovementHandler{uc: uc, notifier: notifier}
}

func (h *MovementHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/movements", h.list)
	g.GET("/movements/stream", h.stream)
}

func (h *MovementHandler) list(c echo.Context) error {
	// limit/offset（省略時は全件）
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	views, err := h.uc.ListMovements(c.Request().Context(), usecase.ListMovementsInput{
		ItemID:     c.QueryParam("item_id"),
		EmployeeID: c.QueryParam("employee_id"),
		Action:     c.QueryParam("action"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, views)
}

// streamは履歴追記をSSEで流す。
// クライアントはイベントを合図に一覧を取り直す（差分マージはしない）。
func (h *MovementHandler) stream(c echo.Context) error {
	ctx := c.Request().Context()

	events, unsub, err := h.notifier.Subscribe(ctx)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "subscribe failed"})
	}
	defer unsub()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: movement\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
