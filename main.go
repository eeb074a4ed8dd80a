package main

import (
    "os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	config "github.com/s0ld1err/MagazinOnline/configs"
	"github.com/s0ld1err/MagazinOnline/internal/auth"
	"github.com/s0ld1err/MagazinOnline/internal/cart"
	"github.com/s0ld1err/MagazinOnline/internal/catalog"
	"github.com/s0ld1err/MagazinOnline/internal/db"
	"github.com/s0ld1err/MagazinOnline/internal/events"
	"github.com/s0ld1err/MagazinOnline/internal/handlers"
	"github.com/s0ld1err/MagazinOnline/internal/metrics"
	"github.com/s0ld1err/MagazinOnline/internal/notifier"
	"github.com/s0ld1err/MagazinOnline/internal/orders"
)

func main() {

    zl, _ := zap.NewProduction()
    defer zl.Sync()
    logger := zl.Sugar()

    db.Init()
    auth.Init()

    // catalog lookup, with redis cache-aside when configured
    var catalogCache *redis.Client
    lookup := catalog.NewGormLookup(db.DB)
    if cfg := config.LoadRedisConfig(); cfg.Addr != "" {
        catalogCache = redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password})
        lookup = catalog.NewCachedLookup(lookup, catalogCache, logger)
    }

    kafkaCfg := config.LoadKafkaConfig()
    publisher := events.NewKafkaPublisher(kafkaCfg.Brokers, kafkaCfg.Topic)

    serverMetrics := metrics.NewServerMetrics()

    handlers.Init(handlers.Deps{
        Cart:         cart.NewService(db.DB, lookup, logger),
        Orders:       orders.NewStore(db.DB),
        Publisher:    publisher,
        Notifier:     notifier.Live{},
        Metrics:      serverMetrics,
        CatalogCache: catalogCache,
        Logger:       logger,
    })

    r := gin.Default()
    r.Use(metrics.Middleware(serverMetrics))

    // ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions(auth.SessionName, store))

    // ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/auth/login", auth.Login)
	r.GET("/auth/callback", auth.Callback)
	r.GET("/products", handlers.ListProducts)
	r.GET("/products/:id", handlers.GetProduct)
	r.GET("/categories", handlers.ListCategories)
	r.GET("/categories/:id", handlers.GetCategory)

    // ── protected API ──
    api := r.Group("/")
    api.Use(auth.RequireAuth())
    {
        api.POST("/categories", handlers.CreateCategory)
        api.POST("/products", handlers.CreateProduct)
        api.PUT("/products/:id", handlers.UpdateProduct)
        api.DELETE("/products/:id", handlers.DeleteProduct)
        api.GET("/products-average", handlers.GetAveragePrice)

        api.GET("/cart/:customerId", handlers.GetCart)
        api.POST("/cart/:customerId/add", handlers.AddToCart)
        api.POST("/cart/:customerId/update-quantity", handlers.UpdateCartItemQuantity)
        api.POST("/cart/:customerId/remove", handlers.RemoveFromCart)
        api.POST("/cart/:customerId/checkout", handlers.Checkout)

        // gin cannot mix a static segment with :customerId, so the detail
        // route /orders/order/:orderId binds "order" to :customerId.
        api.GET("/orders/:customerId", handlers.GetOrdersForCustomer)
        api.GET("/orders/:customerId/:orderId", handlers.GetOrderByID)
    }

    admin := r.Group("/")
    admin.Use(auth.RequireAuth(), auth.RequireAdmin())
    {
        admin.GET("/orders", handlers.GetAllOrders)
    }

    r.Run(":8080")
}


func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
