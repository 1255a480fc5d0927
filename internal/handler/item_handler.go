package handler

import (
	"net/http"

	"inventario/internal/middleware"
	"inventario/internal/usecase"

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

// /items のAPI
type ItemHandler struct {
	uc *usecase.InventoryUsecase
}

// DI
func NewItemHandler(uc *usecase.InventoryUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// 一覧は認証のみ、mutationはJWTガード配下で登録する
func (h *ItemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/items", h.list)
	g.POST("/items", h.create)
	g.PUT("/items/:id", h.update)
	g.DELETE("/items/:id", h.remove)
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Quantity    *int64 `json:"quantity" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Category    string `json:"category" validate:"required"`
	MinStock    *int64 `json:"min_stock"`
	Image       string `json:"image"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Quantity    *int64  `json:"quantity"`
	Unit        *string `json:"unit"`
	Category    *string `json:"category"`
	MinStock    *int64  `json:"min_stock"`
	Image       *string `json:"image"`
}

func (h *ItemHandler) list(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateItemWithHistory(c.Request().Context(), middleware.ActorID(c), usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Unit:        req.Unit,
		Category:    req.Category,
		MinStock:    req.MinStock,
		Image:       req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ItemHandler) update(c echo.Context) error {
	id := c.Param("id")

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateItemWithHistory(c.Request().Context(), middleware.ActorID(c), id, usecase.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Category:    req.Category,
		MinStock:    req.MinStock,
		Image:       req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) remove(c echo.Context) error {
	id := c.Param("id")

	out, err := h.uc.DeleteItemWithHistory(c.Request().Context(), middleware.ActorID(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
