package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/s0ld1err/MagazinOnline/internal/models"
	"github.com/s0ld1err/MagazinOnline/internal/orders"
)

type OrderItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderSummaryResponse is the per-customer listing row; contact fields are
// omitted there and only returned on the detailed views.
type OrderSummaryResponse struct {
	ID         uint                `json:"id"`
	Reference  string              `json:"reference"`
	OrderDate  time.Time           `json:"order_date"`
	TotalPrice float64             `json:"total_price"`
	Items      []OrderItemResponse `json:"order_items"`
}

type OrderDetailResponse struct {
	ID              uint                 `json:"id"`
	Reference       string               `json:"reference"`
	CustomerID      uint                 `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	DeliveryAddress string               `json:"delivery_address"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email"`
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	OrderDate       time.Time            `json:"order_date"`
	TotalPrice      float64              `json:"total_price"`
	Items           []OrderItemResponse  `json:"order_items"`
}

func orderItemResponses(items []models.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}

func orderSummaryResponse(order *models.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:         order.ID,
		Reference:  order.Reference,
		OrderDate:  order.OrderDate,
		TotalPrice: order.TotalPrice,
		Items:      orderItemResponses(order.Items),
	}
}

func orderDetailResponse(order *models.Order) OrderDetailResponse {
	return OrderDetailResponse{
		ID:              order.ID,
		Reference:       order.Reference,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		DeliveryAddress: order.DeliveryAddress,
		Phone:           order.Phone,
		Email:           order.Email,
		PaymentMethod:   order.PaymentMethod,
		OrderDate:       order.OrderDate,
		TotalPrice:      order.TotalPrice,
		Items:           orderItemResponses(order.Items),
	}
}

// GET /orders/:customerId
func GetOrdersForCustomer(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	list, err := orderStore.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no orders found for this customer"})
		return
	}

	response := make([]OrderSummaryResponse, 0, len(list))
	for i := range list {
		response = append(response, orderSummaryResponse(&list[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GET /orders/order/:orderId
func GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, getErr := orderStore.GetByID(c.Request.Context(), uint(orderID))
	if getErr == orders.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if getErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": getErr.Error()})
		return
	}

	c.JSON(http.StatusOK, orderDetailResponse(order))
}

// GET /orders (admin)
func GetAllOrders(c *gin.Context) {
	list, err := orderStore.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no orders found"})
		return
	}

	response := make([]OrderDetailResponse, 0, len(list))
	for i := range list {
		response = append(response, orderDetailResponse(&list[i]))
	}

	c.JSON(http.StatusOK, response)
}
