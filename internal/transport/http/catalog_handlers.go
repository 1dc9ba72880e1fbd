package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// itemView — карточка товара: поля провайдера и производные значения для витрины.
type itemView struct {
	domain.Item
	Images          []string        `json:"images"`
	HasDiscount     bool            `json:"has_discount"`
	DiscountPercent int             `json:"discount_percent"`
	Savings         decimal.Decimal `json:"savings"`
}

func newItemView(item *domain.Item) itemView {
	return itemView{
		Item:            *item,
		Images:          item.Images(),
		HasDiscount:     item.HasDiscount(),
		DiscountPercent: item.DiscountPercent(),
		Savings:         item.Savings(),
	}
}

// listCatalog — ?category=X или ?in_stock=true выбирают отфильтрованные запросы.
func (h *Handler) listCatalog(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	var (
		items []domain.Item
		err   error
	)
	category := strings.TrimSpace(c.Query("category"))
	inStock, _ := strconv.ParseBool(c.Query("in_stock"))

	switch {
	case category != "":
		items, err = h.svc.Catalog.GetByCategory(ctx, category)
	case inStock:
		items, err = h.svc.Catalog.GetInStock(ctx)
	default:
		items, err = h.svc.Catalog.GetAll(ctx)
	}
	if err != nil {
		h.log.Errorf(ctx, "list catalog failed category=%q in_stock=%t err=%v", category, inStock, err)
		providerError(c)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getItem(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	item, err := h.svc.Catalog.GetByID(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "get item failed id=%s err=%v", id, err)
		providerError(c)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, newItemView(item))
}

func (h *Handler) listCategories(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	categories, err := h.svc.Catalog.Categories(ctx)
	if err != nil {
		h.log.Errorf(ctx, "list categories failed err=%v", err)
		providerError(c)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

// providerError — провайдер каталога недоступен или ответил ошибкой; детали только в логе.
func providerError(c *gin.Context) {
	c.JSON(http.StatusBadGateway, gin.H{"error": "catalog provider unavailable, please try again later"})
}
