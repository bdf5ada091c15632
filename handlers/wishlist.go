package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/utils"
)

// GetWishlist retrieves the saved products
func (h *Handler) GetWishlist(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	items := st.Wishlist()
	c.JSON(http.StatusOK, gin.H{"wishlist": items, "count": len(items)})
}

// AddToWishlist saves a product; saving it twice keeps one entry
func (h *Handler) AddToWishlist(c *gin.Context) {
	var input models.WishlistItemInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, found := h.catalog.ByID(input.ProductID)
	if !found {
		respondError(c, &utils.ErrNotFound{Resource: "product", ID: input.ProductID})
		return
	}

	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.AddToWishlist(product)

	items := st.Wishlist()
	c.JSON(http.StatusOK, gin.H{"wishlist": items, "count": len(items)})
}

// CheckWishlist reports whether a product is saved
func (h *Handler) CheckWishlist(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	productID := c.Param("productId")
	c.JSON(http.StatusOK, gin.H{
		"productId":  productID,
		"inWishlist": st.IsInWishlist(productID),
	})
}

// RemoveFromWishlist removes a saved product
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.RemoveFromWishlist(c.Param("productId"))

	items := st.Wishlist()
	c.JSON(http.StatusOK, gin.H{"wishlist": items, "count": len(items)})
}

// ClearWishlist removes every saved product
func (h *Handler) ClearWishlist(c *gin.Context) {
	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	st.ClearWishlist()

	c.JSON(http.StatusOK, gin.H{"wishlist": []models.WishlistItem{}, "count": 0})
}
