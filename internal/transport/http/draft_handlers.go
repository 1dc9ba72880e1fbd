package rest

import (
	"net/http"
	"strings"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

const draftIDKey = "draft_id"

// draftScope — нормализует id черновика один раз для всех обработчиков
// и помечает им контекст запроса для логов. Пустой id — 400.
func draftScope(c *gin.Context) {
	id := normalizeDraftID(c.Param("id"))
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "draft id is required"})
		return
	}
	c.Set(draftIDKey, id)
	c.Request = c.Request.WithContext(ctxmeta.WithDraftID(c.Request.Context(), id))
	c.Next()
}

func normalizeDraftID(raw string) string { return strings.TrimSpace(raw) }

func draftID(c *gin.Context) string { return c.GetString(draftIDKey) }

func (h *Handler) getDraft(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	form, ok := h.svc.Drafts.Get(ctx, draftID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// saveDraft — неполная форма допустима: это черновик.
func (h *Handler) saveDraft(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	var form domain.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.Drafts.Save(ctx, draftID(c), &form); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft storage unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearDraft(c *gin.Context) {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	if err := h.svc.Drafts.Clear(ctx, draftID(c)); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft storage unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}
