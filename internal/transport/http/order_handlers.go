package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/usecase"
	"github.com/Gunvolt24/wildink/pkg/httpx"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/gin-gonic/gin"
)

const (
	defaultOrdersLimit = 20
	maxOrdersLimit     = 100
)

// checkoutRequest — draft_id (если передан) очищается после успешного оформления.
type checkoutRequest struct {
	ProductID string `json:"product_id"`
	DraftID   string `json:"draft_id,omitempty"`
	domain.CheckoutForm
}

func (h *Handler) placeOrder(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	order, err := h.svc.Checkout.PlaceOrder(ctx, productID, &req.CheckoutForm)
	switch {
	case err == nil:
		if id := normalizeDraftID(req.DraftID); id != "" && h.svc.Drafts != nil {
			_ = h.svc.Drafts.Clear(ctx, id)
		}
		c.JSON(http.StatusCreated, order)
	case errors.Is(err, validate.ErrInvalidCheckout):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		h.log.Errorf(ctx, "place order failed product_id=%s err=%v", productID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit order, please try again later"})
	}
}

func (h *Handler) getOrder(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}
	order, err := h.svc.Orders.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "get order failed id=%s err=%v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order provider unavailable"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// listOrders — все заказы таблицы с пагинацией по limit/offset.
func (h *Handler) listOrders(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	limit, offset := httpx.ParseLimitOffset(c, defaultOrdersLimit, maxOrdersLimit)
	orders, err := h.svc.Orders.ListOrders(ctx)
	if err != nil {
		h.log.Errorf(ctx, "list orders failed err=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, httpx.Page(orders, limit, offset))
}

// listOrdersByCustomer — провайдер отдаёт все заказы покупателя, limit/offset режут результат.
func (h *Handler) listOrdersByCustomer(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty customer email"})
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, defaultOrdersLimit, maxOrdersLimit)

	orders, err := h.svc.Orders.OrdersByCustomerEmail(ctx, email)
	if err != nil {
		h.log.Errorf(ctx, "orders by customer failed email=%s err=%v", email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, httpx.Page(orders, limit, offset))
}
