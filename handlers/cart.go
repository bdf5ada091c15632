package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/utils"
)

// GetCart retrieves the shopper's cart with derived totals
func (h *Handler) GetCart(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": st.Summary(h.opts.Pricing)})
}

// AddToCart adds a product line or merges into the line with the same size
func (h *Handler) AddToCart(c *gin.Context) {
	var input models.CartItemInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Quantity defaults to one; negative quantities are ignored by the store
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	product, found := h.catalog.ByID(input.ProductID)
	if !found {
		respondError(c, &utils.ErrNotFound{Resource: "product", ID: input.ProductID})
		return
	}

	if input.Size == "" {
		input.Size = product.DefaultSize()
	}
	if len(product.Sizes) > 0 && !product.HasSize(input.Size) {
		respondError(c, &utils.ErrValidation{
			Message: fmt.Sprintf("size %q is not available for %s", input.Size, product.Name),
			Fields:  map[string]string{"size": "must be one of the product sizes"},
		})
		return
	}
	if !product.HasColor(input.Color) {
		respondError(c, &utils.ErrValidation{
			Message: fmt.Sprintf("color %q is not available for %s", input.Color, product.Name),
			Fields:  map[string]string{"color": "must be one of the product colors"},
		})
		return
	}

	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.AddToCart(product, input.Size, input.Color, input.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"cart":         st.Summary(h.opts.Pricing),
		"miniCartOpen": input.Quantity > 0,
	})
}

// UpdateCartItem sets the quantity of a cart line. Quantities below 1 are
// ignored and the unchanged cart is returned.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input models.CartQuantityInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.UpdateCartQuantity(c.Param("productId"), c.Param("size"), input.Quantity)

	c.JSON(http.StatusOK, gin.H{"cart": st.Summary(h.opts.Pricing)})
}

// RemoveFromCart removes a cart line
func (h *Handler) RemoveFromCart(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.RemoveFromCart(c.Param("productId"), c.Param("size"))

	c.JSON(http.StatusOK, gin.H{"cart": st.Summary(h.opts.Pricing)})
}

// ClearCart removes all lines from the cart
func (h *Handler) ClearCart(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.ClearCart()

	c.JSON(http.StatusOK, gin.H{"cart": st.Summary(h.opts.Pricing)})
}
