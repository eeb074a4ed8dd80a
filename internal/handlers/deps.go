package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/s0ld1err/MagazinOnline/internal/cart"
	"github.com/s0ld1err/MagazinOnline/internal/events"
	"github.com/s0ld1err/MagazinOnline/internal/metrics"
	"github.com/s0ld1err/MagazinOnline/internal/orders"
)

// Notifier sends order confirmations out of band after a checkout commits.
type Notifier interface {
	SendSMS(toPhoneNumber string, orderID uint, totalAmount float64) error
	SendEmail(recipientEmail string, customerName string, orderID uint, totalAmount float64) error
}

// Package-level collaborators, wired once in main (and swapped by tests, same
// pattern as db.SetTestDB).
var (
	cartService   *cart.Service
	orderStore    *orders.Store
	publisher     events.Publisher
	orderNotifier Notifier
	serverMetrics *metrics.ServerMetrics
	catalogCache  *redis.Client
	logger        = zap.NewNop().Sugar()
)

type Deps struct {
	Cart         *cart.Service
	Orders       *orders.Store
	Publisher    events.Publisher
	Notifier     Notifier
	Metrics      *metrics.ServerMetrics
	CatalogCache *redis.Client
	Logger       *zap.SugaredLogger
}

func Init(deps Deps) {
	cartService = deps.Cart
	orderStore = deps.Orders
	publisher = deps.Publisher
	orderNotifier = deps.Notifier
	serverMetrics = deps.Metrics
	catalogCache = deps.CatalogCache
	if deps.Logger != nil {
		logger = deps.Logger
	}
}

// mapServiceError translates the cart service taxonomy to HTTP statuses.
func mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
