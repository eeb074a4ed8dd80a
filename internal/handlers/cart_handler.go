package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/s0ld1err/MagazinOnline/internal/models"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type UpdateQuantityRequest struct {
	ProductID      uint `json:"product_id" binding:"required"`
	QuantityChange int  `json:"quantity_change" binding:"required"`
}

type RemoveFromCartRequest struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

func customerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("customerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return 0, false
	}
	return uint(id), true
}

// GET /cart/:customerId
func GetCart(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	view, err := cartService.GetCart(c.Request.Context(), customerID)
	if err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// POST /cart/:customerId/add
func AddToCart(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cartService.AddItem(c.Request.Context(), customerID, req.ProductID, req.Quantity); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product added to cart successfully"})
}

// POST /cart/:customerId/update-quantity
func UpdateCartItemQuantity(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cartService.UpdateQuantity(c.Request.Context(), customerID, req.ProductID, req.QuantityChange); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart item quantity updated successfully"})
}

// POST /cart/:customerId/remove
func RemoveFromCart(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var req RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cartService.RemoveItem(c.Request.Context(), customerID, req.CartItemID); err != nil {
		mapServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed from cart successfully"})
}

// POST /cart/:customerId/checkout
func Checkout(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := cartService.Checkout(c.Request.Context(), customerID, req.PaymentMethod)
	if err != nil {
		if serverMetrics != nil {
			serverMetrics.Checkouts.WithLabelValues("failure").Inc()
		}
		mapServiceError(c, err)
		return
	}

	if serverMetrics != nil {
		serverMetrics.Checkouts.WithLabelValues("success").Inc()
	}

	// Post-commit side effects; a failure here never fails the checkout.
	if publisher != nil {
		go func(order models.Order) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := publisher.PublishOrderCreated(ctx, &order); err != nil {
				logger.Warnw("order event publish failed", "order_id", order.ID, "err", err)
			}
		}(*order)
	}

	if orderNotifier != nil {
		go func(order models.Order) {
			if err := orderNotifier.SendSMS(order.Phone, order.ID, order.TotalPrice); err != nil {
				logger.Warnw("order SMS failed", "order_id", order.ID, "phone", order.Phone, "err", err)
			}
		}(*order)

		go func(order models.Order) {
			if err := orderNotifier.SendEmail(order.Email, order.CustomerName, order.ID, order.TotalPrice); err != nil {
				logger.Warnw("order email failed", "order_id", order.ID, "email", order.Email, "err", err)
			}
		}(*order)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "checkout successful, order has been created",
		"order":   orderDetailResponse(order),
	})
}
