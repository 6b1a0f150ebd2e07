package http

import (
	"net/http"
	"strconv"

	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateMiniStore(c *gin.Context) {
	var req CreateMiniStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	store, err := h.stores.Create(c.Request.Context(), services.CreateStoreInput{
		Slug:        req.Slug,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		BannerURL:   req.BannerURL,
		ProductIDs:  req.Products,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *Handler) ListMiniStores(c *gin.Context) {
	var q ListMiniStoresQuery
	_ = c.ShouldBindQuery(&q)
	limit, _ := strconv.Atoi(q.Limit)

	stores, err := h.stores.List(c.Request.Context(), services.ListLimit(q.All, limit))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *Handler) GetMiniStore(c *gin.Context) {
	store, err := h.stores.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *Handler) ToggleMiniStore(c *gin.Context) {
	store, err := h.stores.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isActive": store.IsActive})
}

func (h *Handler) DeleteMiniStore(c *gin.Context) {
	if err := h.stores.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted"})
}
