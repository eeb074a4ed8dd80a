package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/s0ld1err/MagazinOnline/internal/cart"
	"github.com/s0ld1err/MagazinOnline/internal/catalog"
	"github.com/s0ld1err/MagazinOnline/internal/db"
	"github.com/s0ld1err/MagazinOnline/internal/handlers"
	"github.com/s0ld1err/MagazinOnline/internal/models"
	"github.com/s0ld1err/MagazinOnline/internal/orders"
)

func setupOrderTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}
	if err := db.Migrate(testDB); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	logger := zap.NewNop().Sugar()
	handlers.Init(handlers.Deps{
		Cart:   cart.NewService(testDB, catalog.NewGormLookup(testDB), logger),
		Orders: orders.NewStore(testDB),
		Logger: logger,
	})

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/orders", handlers.GetAllOrders)
	r.GET("/orders/:customerId", handlers.GetOrdersForCustomer)
	r.GET("/orders/:customerId/:orderId", handlers.GetOrderByID)

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func seedOrderRecord(t *testing.T, testDB *gorm.DB, customerID uint) models.Order {
	order := models.Order{
		Reference:       uuid.NewString(),
		CustomerID:      customerID,
		CustomerName:    "Ana Pop",
		DeliveryAddress: "Strada Mare 3",
		Phone:           "0712345678",
		Email:           "ana@example.com",
		PaymentMethod:   models.PaymentCashOnDelivery,
		OrderDate:       time.Now().UTC(),
		TotalPrice:      45.00,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Widget", Quantity: 2, UnitPrice: 10.00},
			{ProductID: 2, ProductName: "Gadget", Quantity: 1, UnitPrice: 25.00},
		},
	}
	require.NoError(t, testDB.Create(&order).Error)
	return order
}

func TestGetOrdersForCustomerHandler(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)

	seedOrderRecord(t, testDB, 1)
	seedOrderRecord(t, testDB, 1)
	seedOrderRecord(t, testDB, 2)

	t.Run("Returns the customer's order summaries", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders/1", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response []handlers.OrderSummaryResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response, 2)
		for _, summary := range response {
			assert.Equal(t, 45.00, summary.TotalPrice)
			assert.Len(t, summary.Items, 2)
		}
	})

	t.Run("Returns 404 when the customer has no orders", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders/99", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "no orders found for this customer", response["error"])
	})
}

func TestGetOrderByIDHandler(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)

	order := seedOrderRecord(t, testDB, 7)

	t.Run("Returns the full denormalized snapshot", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/order/%d", order.ID), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var detail handlers.OrderDetailResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detail))
		assert.Equal(t, order.Reference, detail.Reference)
		assert.Equal(t, "Ana Pop", detail.CustomerName)
		assert.Equal(t, "Strada Mare 3", detail.DeliveryAddress)
		assert.Equal(t, models.PaymentCashOnDelivery, detail.PaymentMethod)
		assert.Len(t, detail.Items, 2)

		var sum float64
		for _, item := range detail.Items {
			sum += float64(item.Quantity) * item.UnitPrice
		}
		assert.Equal(t, detail.TotalPrice, sum)
	})

	t.Run("Returns 404 for an unknown order", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders/order/99999", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetAllOrdersHandler(t *testing.T) {
	router, testDB := setupOrderTestRouter(t)

	t.Run("Returns 404 when no orders exist", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Returns every order with full detail", func(t *testing.T) {
		seedOrderRecord(t, testDB, 1)
		seedOrderRecord(t, testDB, 2)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response []handlers.OrderDetailResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response, 2)
	})
}
