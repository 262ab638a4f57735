package handler

import (
	"net/http"

	"github.com/hotriluan/vuki-sub000/internal/apperr"
	"github.com/hotriluan/vuki-sub000/internal/config"
	"github.com/hotriluan/vuki-sub000/internal/middleware"
	"github.com/hotriluan/vuki-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateItem struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId"`
	Quantity  int64   `json:"quantity"`
}

type OrderCreateRequest struct {
	Items []OrderCreateItem `json:"items"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"productId,omitempty"`
	VariantID string `json:"variantId,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.AuthConfig) {
	g := e.Group("/orders")
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperr.New(apperr.CodeInvalidItems, "invalid body"))
	}

	items := make([]usecase.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		variantID := ""
		if it.VariantID != nil {
			variantID = *it.VariantID
		}
		items = append(items, usecase.PlaceOrderItem{
			ProductID: it.ProductID,
			VariantID: variantID,
			Quantity:  it.Quantity,
		})
	}

	// checkout works anonymously; a valid token attaches the user
	var userID *string
	if uid, ok := getUserIDFromContext(c); ok {
		userID = &uid
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{Items: items})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, apperr.New(apperr.CodeUnauthorized, "unauthorized"))
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return writeError(c, apperr.New(apperr.CodeUnauthorized, "unauthorized"))
	}

	out, err := h.uc.GetMyOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// writeError is the only spot where error codes become HTTP statuses.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := apperr.As(err); ok {
		return c.JSON(apperr.HTTPStatus(ae.Code), ErrorResponse{Error: ErrorBody{
			Code:      string(ae.Code),
			Message:   ae.Message,
			ProductID: ae.ProductID,
			VariantID: ae.VariantID,
		}})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
		Code:    "Internal",
		Message: "internal error",
	}})
}
