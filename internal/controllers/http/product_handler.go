package http

import (
	"net/http"
	"strings"

	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *Handler) AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	price := decimal.Zero
	if req.Price != "" {
		p, err := decimal.NewFromString(req.Price.String())
		if err != nil {
			badRequest(c, "Invalid price")
			return
		}
		price = p
	}

	_, err := h.products.Add(c.Request.Context(), services.AddProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Images:      req.Images,
		Bestseller:  strings.EqualFold(strings.Trim(string(req.Bestseller), `"`), "true"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Added"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) SingleProduct(c *gin.Context) {
	var req SingleProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	product, err := h.products.Single(c.Request.Context(), req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
