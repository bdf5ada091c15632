package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Phirakan/go-storefront/catalog"
	"github.com/Phirakan/go-storefront/middleware"
	"github.com/Phirakan/go-storefront/store"
	"github.com/Phirakan/go-storefront/utils"
)

// maxPageSize caps the page_size query parameter
const maxPageSize = 100

// Options are the tunables the handlers need from configuration
type Options struct {
	Pricing       store.Pricing
	PageSize      int
	RelatedLimit  int
	CheckoutDelay time.Duration
}

// Handler serves the storefront API from the catalog and the per-session
// stores.
type Handler struct {
	catalog  *catalog.Catalog
	sessions *store.Registry
	logger   *zap.Logger
	opts     Options
	now      func() time.Time
}

// New creates a Handler
func New(cat *catalog.Catalog, sessions *store.Registry, logger *zap.Logger, opts Options) *Handler {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = catalog.DefaultRelatedLimit
	}
	return &Handler{
		catalog:  cat,
		sessions: sessions,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Routes registers every storefront route. Session middleware must run
// before the cart, wishlist and checkout routes.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/health-check", h.CheckConnection)

	r.GET("/products", h.GetAllProducts)
	r.GET("/products/facets", h.GetProductFacets)
	r.GET("/products/:slug", h.GetProduct)
	r.GET("/collections/:tag", h.GetCollection)

	// Cart routes
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddToCart)
	r.PUT("/cart/items/:productId/:size", h.UpdateCartItem)
	r.DELETE("/cart/items/:productId/:size", h.RemoveFromCart)
	r.DELETE("/cart", h.ClearCart)

	// Wishlist routes
	r.GET("/wishlist", h.GetWishlist)
	r.POST("/wishlist/items", h.AddToWishlist)
	r.GET("/wishlist/items/:productId", h.CheckWishlist)
	r.DELETE("/wishlist/items/:productId", h.RemoveFromWishlist)
	r.DELETE("/wishlist", h.ClearWishlist)

	// Checkout route
	r.POST("/checkout", h.Checkout)
}

// shopperStore resolves the calling session's store. It writes the error
// response itself when no session is present.
func (h *Handler) shopperStore(c *gin.Context) (*store.Store, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return nil, false
	}
	return h.sessions.Get(c.Request.Context(), sessionID), true
}

func respondError(c *gin.Context, err error) {
	var (
		notFound   *utils.ErrNotFound
		validation *utils.ErrValidation
		conflict   *utils.ErrConflict
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		body := gin.H{"error": err.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
