package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shopng/internal/admin"
	"shopng/internal/cart"
	"shopng/internal/catalog"
	"shopng/internal/models"
	"shopng/internal/orders"
	"shopng/internal/profile"
	"shopng/internal/session"
	"shopng/internal/users"
	"shopng/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains the HTTP handlers for the storefront and admin panel
type Handler struct {
	catalog  *catalog.Catalog
	cart     *cart.Cart
	orders   *orders.Directory
	users    *users.Directory
	profiles *profile.Store
	sessions *session.Provider
	view     *admin.View
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *catalog.Catalog,
	cart *cart.Cart,
	orders *orders.Directory,
	users *users.Directory,
	profiles *profile.Store,
	sessions *session.Provider,
	view *admin.View,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		users:    users,
		profiles: profiles,
		sessions: sessions,
		view:     view,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/categories", h.listCategories)
		v1.GET("/featured", h.listFeatured)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:productId", h.updateCartItem)
		v1.DELETE("/cart/items/:productId", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)
		v1.POST("/checkout", h.checkout)

		v1.POST("/session", h.login)
		v1.DELETE("/session", h.logout)
		v1.GET("/profile", h.getProfile)
		v1.PUT("/profile", h.saveProfile)

		adminGroup := v1.Group("/admin")
		{
			adminGroup.GET("/orders", h.listOrders)
			adminGroup.GET("/orders/stats", h.orderStats)
			adminGroup.POST("/orders/reload", h.reloadOrders)
			adminGroup.POST("/orders/:id/status", h.updateOrderStatus)

			adminGroup.GET("/users", h.listUsers)
			adminGroup.GET("/users/stats", h.userStats)
			adminGroup.POST("/users/reload", h.reloadUsers)
			adminGroup.GET("/users/:id", h.userDetail)
			adminGroup.POST("/users/:id/toggle", h.toggleUserStatus)
		}
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	if term := c.Query("q"); term != "" {
		c.JSON(http.StatusOK, h.catalog.Search(term))
		return
	}
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, h.catalog.ProductsByCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.catalog.Products())
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.ProductByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

func (h *Handler) listFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Featured())
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":       h.cart.Items(),
		"item_count":  h.cart.ItemCount(),
		"total_price": h.cart.TotalPrice(),
	})
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"omitempty,min=1"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.ProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.cart.AddItem(*product, req.Quantity)
	h.getCart(c)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.cart.UpdateQuantity(productID, req.Quantity)
	h.getCart(c)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	h.cart.RemoveItem(productID)
	h.getCart(c)
}

func (h *Handler) clearCart(c *gin.Context) {
	h.cart.Clear()
	h.getCart(c)
}

func (h *Handler) checkout(c *gin.Context) {
	items := h.cart.Items()
	order, err := h.orders.Place(c.Request.Context(), items, h.sessions.Current())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Checkout failed", "details": err.Error()})
		return
	}

	h.cart.Clear()
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) login(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.sessions.Login(user)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Logout()
	c.Status(http.StatusNoContent)
}

func (h *Handler) getProfile(c *gin.Context) {
	p := h.profiles.Live()
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) saveProfile(c *gin.Context) {
	var p models.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.profiles.Save(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	term := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"orders": h.orders.Filtered(status, term),
		"error":  h.orders.LastError(),
	})
}

func (h *Handler) orderStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.orders.Stats())
}

func (h *Handler) reloadOrders(c *gin.Context) {
	if err := h.orders.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": h.orders.LastError()})
		return
	}
	c.JSON(http.StatusOK, h.orders.Stats())
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, models.ErrInvalidTransition):
		allowed := []string{}
		if current, lookupErr := h.orders.Order(id); lookupErr == nil {
			allowed = orders.NextStatuses(current.Status)
		}
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid status transition",
			"allowed": allowed,
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, order)
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	role := c.DefaultQuery("role", "all")
	term := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"users": h.users.Filtered(role, term),
		"error": h.users.LastError(),
	})
}

func (h *Handler) userStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.users.Stats())
}

func (h *Handler) reloadUsers(c *gin.Context) {
	if err := h.users.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": h.users.LastError()})
		return
	}
	c.JSON(http.StatusOK, h.users.Stats())
}

func (h *Handler) userDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	detail, err := h.view.UserDetail(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) toggleUserStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// Self-lock: the authenticated admin can never suspend their own
	// account.
	if h.sessions.IsSelf(id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot change your own account status"})
		return
	}

	user, err := h.users.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
