package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/utils"
)

// Checkout places a simulated order: the cart is summarised, cleared and a
// confirmation returned. No payment is taken and nothing is stored.
func (h *Handler) Checkout(c *gin.Context) {
	var input models.CheckoutInput

	// Parse the request
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return
	}

	if strings.TrimSpace(input.ShippingAddress.Country) == "" {
		input.ShippingAddress.Country = models.DefaultCountry
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentCard
	}

	st, ok := h.shopperStore(c)
	if !ok {
		return
	}

	if st.LineCount() == 0 {
		respondError(c, &utils.ErrConflict{Message: "cart is empty"})
		return
	}

	// Simulate order processing
	if h.opts.CheckoutDelay > 0 {
		timer := time.NewTimer(h.opts.CheckoutDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			h.logger.Info("Checkout abandoned", zap.Error(c.Request.Context().Err()))
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		}
	}

	summary, placed := st.Checkout(h.opts.Pricing)
	if !placed {
		// Another request emptied the cart while this one was processing
		respondError(c, &utils.ErrConflict{Message: "cart is empty"})
		return
	}

	order := models.OrderConfirmation{
		OrderNumber:     strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10]),
		Email:           input.Email,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		Items:           summary.Items,
		Totals:          summary.Totals,
		PlacedAt:        h.now().UTC(),
	}

	h.logger.Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", order.Totals.ItemCount),
		zap.String("grand_total", order.Totals.GrandTotal.String()),
	)

	c.JSON(http.StatusCreated, gin.H{"order": order})
}
